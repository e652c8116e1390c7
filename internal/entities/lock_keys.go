package entities

import "dispatch/pkg/keylock"

// Порядок захвата всегда заказ, затем курьер.
func OrderLockKey(orderID int64) string {
	return keylock.Key("order", orderID)
}

func RiderLockKey(riderID int64) string {
	return keylock.Key("rider", riderID)
}

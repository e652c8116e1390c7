package delivery

import "dispatch/internal/entities"

func isValidOrderID(orderID int64) bool {
	return orderID > 0
}

func isValidRiderID(riderID int64) bool {
	return riderID > 0
}

func isValidTargetStatus(status entities.OrderStatusType) bool {
	return status.IsValid()
}

package order

import "time"

type OrderDB struct {
	ID              int64
	Restaurant      string
	PickupAddress   string
	CustomerName    string
	DeliveryAddress string
	DistanceMeters  int64
	TotalCents      int64
	Status          string
	AssignedRiderID *int64
	Version         int64
	CreatedAt       time.Time
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	UpdatedAt       time.Time
}

type StatusTransitionDB struct {
	OrderID    int64
	FromStatus string
	ToStatus   string
	Actor      string
	CreatedAt  time.Time
}

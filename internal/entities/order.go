package entities

import (
	"strconv"
	"time"
)

type Order struct {
	ID              int64
	Restaurant      string
	PickupAddress   string
	CustomerName    string
	DeliveryAddress string
	DistanceMeters  int64
	TotalCents      int64
	Status          OrderStatusType
	AssignedRiderID *int64
	Version         int64
	CreatedAt       time.Time
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	UpdatedAt       time.Time
}

func (o *Order) IsAssignedTo(riderID int64) bool {
	return o.AssignedRiderID != nil && *o.AssignedRiderID == riderID
}

type OrderModify struct {
	ID              *int64
	Restaurant      *string
	PickupAddress   *string
	CustomerName    *string
	DeliveryAddress *string
	DistanceMeters  *int64
	TotalCents      *int64
	Status          *OrderStatusType
	AssignedRiderID *int64
	AssignedAt      *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// StatusModify собирает изменение статуса вместе с отметкой времени этого статуса.
func StatusModify(orderID int64, target OrderStatusType, at time.Time) OrderModify {
	modify := OrderModify{
		ID:     &orderID,
		Status: &target,
	}

	switch target {
	case OrderAwaitingPickup:
		modify.AssignedAt = &at
	case OrderInTransit:
		modify.PickedUpAt = &at
	case OrderDelivered:
		modify.DeliveredAt = &at
	case OrderCancelled:
		modify.CancelledAt = &at
	}
	return modify
}

// StatusTransition запись аудита. From пустой для создания заказа.
type StatusTransition struct {
	OrderID int64
	From    OrderStatusType
	To      OrderStatusType
	Actor   string
	At      time.Time
}

const (
	ActorSystem     = "system"
	ActorRestaurant = "restaurant"
	ActorDispatcher = "dispatcher"
)

func RiderActor(riderID int64) string {
	return "rider:" + strconv.FormatInt(riderID, 10)
}

type OrderEventType string

const (
	OrderEventCreated   OrderEventType = "created"
	OrderEventCancelled OrderEventType = "cancelled"
)

func (t OrderEventType) String() string {
	return string(t)
}

// OrderEvent событие от ресторана. Для cancelled заполнен только Order.ID.
type OrderEvent struct {
	Type  OrderEventType
	Order OrderModify
}

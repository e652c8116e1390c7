package order_events

import (
	"dispatch/internal/entities"
)

type orderEvent struct {
	Event string       `json:"event"`
	Order orderPayload `json:"order"`
}

type orderPayload struct {
	ID              int64   `json:"id"`
	Restaurant      *string `json:"restaurant,omitempty"`
	PickupAddress   *string `json:"pickup_address,omitempty"`
	CustomerName    *string `json:"customer_name,omitempty"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`
	DistanceMeters  *int64  `json:"distance_meters,omitempty"`
	TotalCents      *int64  `json:"total_cents,omitempty"`
}

func (e *orderEvent) toDomain() entities.OrderEvent {
	id := e.Order.ID
	return entities.OrderEvent{
		Type: entities.OrderEventType(e.Event),
		Order: entities.OrderModify{
			ID:              &id,
			Restaurant:      e.Order.Restaurant,
			PickupAddress:   e.Order.PickupAddress,
			CustomerName:    e.Order.CustomerName,
			DeliveryAddress: e.Order.DeliveryAddress,
			DistanceMeters:  e.Order.DistanceMeters,
			TotalCents:      e.Order.TotalCents,
		},
	}
}

package order

import (
	"dispatch/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	return &entities.Order{
		ID:              o.ID,
		Restaurant:      o.Restaurant,
		PickupAddress:   o.PickupAddress,
		CustomerName:    o.CustomerName,
		DeliveryAddress: o.DeliveryAddress,
		DistanceMeters:  o.DistanceMeters,
		TotalCents:      o.TotalCents,
		Status:          entities.OrderStatusType(o.Status),
		AssignedRiderID: o.AssignedRiderID,
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		AssignedAt:      o.AssignedAt,
		PickedUpAt:      o.PickedUpAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i := range ordersDB {
		result[i] = *ToDomain(&ordersDB[i])
	}
	return result
}

func TransitionToDomain(t *StatusTransitionDB) entities.StatusTransition {
	return entities.StatusTransition{
		OrderID: t.OrderID,
		From:    entities.OrderStatusType(t.FromStatus),
		To:      entities.OrderStatusType(t.ToStatus),
		Actor:   t.Actor,
		At:      t.CreatedAt,
	}
}

// modifyColumns пары колонка-значение только для заданных полей.
func modifyColumns(m *entities.OrderModify) map[string]any {
	columns := make(map[string]any)

	if m.Restaurant != nil {
		columns["restaurant"] = *m.Restaurant
	}
	if m.PickupAddress != nil {
		columns["pickup_address"] = *m.PickupAddress
	}
	if m.CustomerName != nil {
		columns["customer_name"] = *m.CustomerName
	}
	if m.DeliveryAddress != nil {
		columns["delivery_address"] = *m.DeliveryAddress
	}
	if m.DistanceMeters != nil {
		columns["distance_meters"] = *m.DistanceMeters
	}
	if m.TotalCents != nil {
		columns["total_cents"] = *m.TotalCents
	}
	if m.Status != nil {
		columns["status"] = m.Status.String()
	}
	if m.AssignedRiderID != nil {
		columns["assigned_rider_id"] = *m.AssignedRiderID
	}
	if m.AssignedAt != nil {
		columns["assigned_at"] = *m.AssignedAt
	}
	if m.PickedUpAt != nil {
		columns["picked_up_at"] = *m.PickedUpAt
	}
	if m.DeliveredAt != nil {
		columns["delivered_at"] = *m.DeliveredAt
	}
	if m.CancelledAt != nil {
		columns["cancelled_at"] = *m.CancelledAt
	}

	return columns
}

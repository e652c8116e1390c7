package dto

import (
	"time"

	"dispatch/internal/entities"
)

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type Order struct {
	ID              int64      `json:"id"`
	Restaurant      string     `json:"restaurant"`
	PickupAddress   string     `json:"pickup_address"`
	CustomerName    string     `json:"customer_name"`
	DeliveryAddress string     `json:"delivery_address"`
	DistanceMeters  int64      `json:"distance_meters"`
	TotalCents      int64      `json:"total_cents"`
	Status          string     `json:"status"`
	AssignedRiderID *int64     `json:"assigned_rider_id"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	AssignedAt      *time.Time `json:"assigned_at,omitempty"`
	PickedUpAt      *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
}

// OrderSnapshot заказ с подсказками для экрана курьера.
type OrderSnapshot struct {
	Order       Order  `json:"order"`
	Label       string `json:"label"`
	ActionLabel string `json:"action_label,omitempty"`
	NextStatus  string `json:"next_status,omitempty"`
	IsTerminal  bool   `json:"is_terminal"`
}

type OrderCreate struct {
	ID              *int64  `json:"id"`
	Restaurant      *string `json:"restaurant"`
	PickupAddress   *string `json:"pickup_address"`
	CustomerName    *string `json:"customer_name"`
	DeliveryAddress *string `json:"delivery_address"`
	DistanceMeters  *int64  `json:"distance_meters"`
	TotalCents      *int64  `json:"total_cents"`
}

type StatusTransition struct {
	From  string    `json:"from,omitempty"`
	To    string    `json:"to"`
	Actor string    `json:"actor"`
	At    time.Time `json:"at"`
}

type OrderHistory struct {
	OrderID     int64              `json:"order_id"`
	Transitions []StatusTransition `json:"transitions"`
}

type Offer struct {
	ID         int64      `json:"id"`
	OrderID    int64      `json:"order_id"`
	Candidates []int64    `json:"candidates"`
	Status     string     `json:"status"`
	OfferedAt  time.Time  `json:"offered_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	AcceptedBy *int64     `json:"accepted_by,omitempty"`
}

type OfferCreate struct {
	CandidateRiderIDs []int64 `json:"candidate_rider_ids"`
}

type OfferView struct {
	Offer Offer         `json:"offer"`
	Order OrderSnapshot `json:"order"`
}

type Rider struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Availability  string `json:"availability"`
	ActiveOrderID *int64 `json:"active_order_id"`
}

type RiderCreate struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Availability string `json:"availability"`
}

type RiderCreateResponse struct {
	ID int64 `json:"id"`
}

type RiderAvailability struct {
	Online *bool `json:"online"`
}

// RiderDashboard pending_offers всегда массив, даже пустой.
type RiderDashboard struct {
	Rider          Rider          `json:"rider"`
	IsOnline       bool           `json:"is_online"`
	PendingOffers  []OfferView    `json:"pending_offers"`
	ActiveDelivery *OrderSnapshot `json:"active_delivery"`
}

type DeliveryAdvance struct {
	Status string `json:"status"`
}

func FromOrder(o *entities.Order) Order {
	return Order{
		ID:              o.ID,
		Restaurant:      o.Restaurant,
		PickupAddress:   o.PickupAddress,
		CustomerName:    o.CustomerName,
		DeliveryAddress: o.DeliveryAddress,
		DistanceMeters:  o.DistanceMeters,
		TotalCents:      o.TotalCents,
		Status:          o.Status.String(),
		AssignedRiderID: o.AssignedRiderID,
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		AssignedAt:      o.AssignedAt,
		PickedUpAt:      o.PickedUpAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
	}
}

func FromOrderSnapshot(s *entities.OrderSnapshot) OrderSnapshot {
	return OrderSnapshot{
		Order:       FromOrder(&s.Order),
		Label:       s.Label,
		ActionLabel: s.ActionLabel,
		NextStatus:  s.NextStatus.String(),
		IsTerminal:  s.IsTerminal,
	}
}

func FromTransitions(orderID int64, transitions []entities.StatusTransition) OrderHistory {
	history := OrderHistory{
		OrderID:     orderID,
		Transitions: make([]StatusTransition, 0, len(transitions)),
	}
	for _, t := range transitions {
		history.Transitions = append(history.Transitions, StatusTransition{
			From:  t.From.String(),
			To:    t.To.String(),
			Actor: t.Actor,
			At:    t.At,
		})
	}
	return history
}

func FromOffer(o *entities.Offer) Offer {
	candidates := o.Candidates
	if candidates == nil {
		candidates = []int64{}
	}
	return Offer{
		ID:         o.ID,
		OrderID:    o.OrderID,
		Candidates: candidates,
		Status:     o.Status.String(),
		OfferedAt:  o.OfferedAt,
		ExpiresAt:  o.ExpiresAt,
		ResolvedAt: o.ResolvedAt,
		AcceptedBy: o.AcceptedBy,
	}
}

func FromRider(r *entities.Rider) Rider {
	return Rider{
		ID:            r.ID,
		Name:          r.Name,
		Phone:         r.Phone,
		Availability:  r.Availability.String(),
		ActiveOrderID: r.ActiveOrderID,
	}
}

func FromRiders(riders []entities.Rider) []Rider {
	result := make([]Rider, 0, len(riders))
	for i := range riders {
		result = append(result, FromRider(&riders[i]))
	}
	return result
}

func FromRiderDashboard(d *entities.RiderDashboard) RiderDashboard {
	dashboard := RiderDashboard{
		Rider:         FromRider(&d.Rider),
		IsOnline:      d.Rider.Availability == entities.RiderOnline,
		PendingOffers: make([]OfferView, 0, len(d.PendingOffers)),
	}
	for i := range d.PendingOffers {
		view := &d.PendingOffers[i]
		dashboard.PendingOffers = append(dashboard.PendingOffers, OfferView{
			Offer: FromOffer(&view.Offer),
			Order: FromOrderSnapshot(&view.Order),
		})
	}
	if d.ActiveDelivery != nil {
		active := FromOrderSnapshot(d.ActiveDelivery)
		dashboard.ActiveDelivery = &active
	}
	return dashboard
}

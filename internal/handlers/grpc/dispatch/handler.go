package dispatch

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
)

// Handler операции экрана курьера поверх gRPC. Ответы в тех же DTO, что и HTTP API.
type Handler struct {
	assignments AssignmentService
	deliveries  DeliveryService
	riders      RiderService
}

func NewHandler(assignments AssignmentService, deliveries DeliveryService, riders RiderService) *Handler {
	return &Handler{
		assignments: assignments,
		deliveries:  deliveries,
		riders:      riders,
	}
}

func (h *Handler) GetOrderView(ctx context.Context, in *GetOrderViewRequest) (*dto.OrderSnapshot, error) {
	snapshot, err := h.deliveries.GetOrderView(ctx, in.OrderID)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := dto.FromOrderSnapshot(snapshot)
	return &resp, nil
}

func (h *Handler) GetRiderDashboard(ctx context.Context, in *GetRiderDashboardRequest) (*dto.RiderDashboard, error) {
	dashboard, err := h.assignments.GetRiderDashboard(ctx, in.RiderID)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := dto.FromRiderDashboard(dashboard)
	return &resp, nil
}

func (h *Handler) ToggleAvailability(ctx context.Context, in *ToggleAvailabilityRequest) (*dto.Rider, error) {
	rider, err := h.riders.ToggleAvailability(ctx, in.RiderID, in.Online)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := dto.FromRider(rider)
	return &resp, nil
}

func (h *Handler) AcceptOffer(ctx context.Context, in *AcceptOfferRequest) (*dto.Order, error) {
	order, err := h.assignments.AcceptOffer(ctx, in.RiderID, in.OrderID)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := dto.FromOrder(order)
	return &resp, nil
}

func (h *Handler) AdvanceDelivery(ctx context.Context, in *AdvanceDeliveryRequest) (*dto.Order, error) {
	order, err := h.deliveries.AdvanceDelivery(ctx, in.RiderID, in.OrderID, entities.OrderStatusType(in.Status))
	if err != nil {
		return nil, toStatus(err)
	}
	resp := dto.FromOrder(order)
	return &resp, nil
}

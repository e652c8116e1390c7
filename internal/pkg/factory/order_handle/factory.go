package order_handle

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/service/assignment"
	"dispatch/internal/service/order"
)

type EventHandlerFactory struct {
	assignmentService order.AssignmentService
	deliveryService   order.DeliveryService
}

func NewEventHandlerFactory(
	assignmentService order.AssignmentService,
	deliveryService order.DeliveryService,
) *EventHandlerFactory {
	return &EventHandlerFactory{
		assignmentService: assignmentService,
		deliveryService:   deliveryService,
	}
}

func (f *EventHandlerFactory) GetHandler(eventType entities.OrderEventType) (order.ExecuteFn, error) {
	switch eventType {
	case entities.OrderEventCreated:
		return f.createdHandler, nil
	case entities.OrderEventCancelled:
		return f.cancelledHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", order.ErrUndefinedEvent, eventType)
	}
}

// createdHandler заказ без подходящих курьеров остается в пуле до следующего прохода диспетчера.
func (f *EventHandlerFactory) createdHandler(ctx context.Context, orderID int64) error {
	_, err := f.assignmentService.OfferOrder(ctx, orderID, nil)
	if err != nil {
		if errors.Is(err, assignment.ErrNoEligibleRiders) || errors.Is(err, entities.ErrInvalidState) {
			return nil
		}
		return fmt.Errorf("offer created order %d: %w", orderID, err)
	}
	return nil
}

func (f *EventHandlerFactory) cancelledHandler(ctx context.Context, orderID int64) error {
	_, err := f.deliveryService.CancelOrder(ctx, orderID, entities.ActorRestaurant)
	if err != nil {
		return fmt.Errorf("cancel order %d: %w", orderID, err)
	}
	return nil
}

package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/metrics"
)

type Service struct {
	repository   Repository
	eventFactory HandlerFactory
	txManager    TxManager
}

func New(repository Repository, eventFactory HandlerFactory, txManager TxManager) *Service {
	return &Service{
		repository:   repository,
		eventFactory: eventFactory,
		txManager:    txManager,
	}
}

// CreateOrder заказ всегда создается в AWAITING_ASSIGNMENT, статус из запроса игнорируется.
func (s *Service) CreateOrder(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	if orderModify.ID == nil ||
		orderModify.Restaurant == nil ||
		orderModify.PickupAddress == nil ||
		orderModify.CustomerName == nil ||
		orderModify.DeliveryAddress == nil ||
		orderModify.TotalCents == nil {
		return nil, ErrMissingRequiredFields
	}

	if !isValidOrderID(*orderModify.ID) {
		return nil, ErrInvalidOrderID
	}
	if !isNonBlank(*orderModify.Restaurant) {
		return nil, ErrInvalidRestaurant
	}
	if !isNonBlank(*orderModify.PickupAddress) || !isNonBlank(*orderModify.DeliveryAddress) {
		return nil, ErrInvalidAddress
	}
	if !isNonBlank(*orderModify.CustomerName) {
		return nil, ErrInvalidCustomerName
	}
	if !isValidAmount(*orderModify.TotalCents) {
		return nil, ErrInvalidAmount
	}
	if orderModify.DistanceMeters != nil && !isValidAmount(*orderModify.DistanceMeters) {
		return nil, ErrInvalidAmount
	}

	status := entities.DefaultOrderStatus
	intake := orderModify
	intake.Status = &status
	intake.AssignedRiderID = nil
	intake.AssignedAt, intake.PickedUpAt, intake.DeliveredAt, intake.CancelledAt = nil, nil, nil, nil

	var created *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repository.Create(ctx, intake)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		err = s.repository.AppendTransitions(ctx, entities.StatusTransition{
			OrderID: created.ID,
			To:      created.Status,
			Actor:   entities.ActorRestaurant,
			At:      time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("append transition: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveTransition("", created.Status.String())
	return created, nil
}

// ProcessOrderEvent повторная доставка created не создает дубль, но снова запускает обработчик.
func (s *Service) ProcessOrderEvent(ctx context.Context, event entities.OrderEvent) error {
	if event.Order.ID == nil {
		return ErrMissingRequiredFields
	}
	orderID := *event.Order.ID
	if !isValidOrderID(orderID) {
		return ErrInvalidOrderID
	}

	executeFn, err := s.eventFactory.GetHandler(event.Type)
	if err != nil {
		return err
	}

	if event.Type == entities.OrderEventCreated {
		_, err = s.CreateOrder(ctx, event.Order)
		if err != nil && !errors.Is(err, entities.ErrConflict) {
			return err
		}
	}

	if err = executeFn(ctx, orderID); err != nil {
		return err
	}

	return nil
}

package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/metrics"
)

type Delivery struct {
	orders       OrderRepository
	offers       OfferRepository
	riderService RiderService
	locker       Locker
	txManager    TxManager
}

func New(
	orders OrderRepository,
	offers OfferRepository,
	riderService RiderService,
	locker Locker,
	txManager TxManager,
) *Delivery {
	return &Delivery{
		orders:       orders,
		offers:       offers,
		riderService: riderService,
		locker:       locker,
		txManager:    txManager,
	}
}

// AdvanceDelivery двигает заказ курьера по графу статусов. Переход в терминальный
// статус, включая CANCELLED от самого курьера, освобождает курьера.
func (d *Delivery) AdvanceDelivery(
	ctx context.Context,
	riderID, orderID int64,
	target entities.OrderStatusType,
) (*entities.Order, error) {
	if !isValidRiderID(riderID) {
		return nil, ErrInvalidRiderID
	}
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidTargetStatus(target) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTargetStatus, target)
	}

	unlockOrder, err := d.locker.Lock(ctx, entities.OrderLockKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}
	defer unlockOrder()

	unlockRider, err := d.locker.Lock(ctx, entities.RiderLockKey(riderID))
	if err != nil {
		return nil, fmt.Errorf("lock rider: %w", err)
	}
	defer unlockRider()

	var (
		advanced *entities.Order
		from     entities.OrderStatusType
	)
	err = d.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := d.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		from = order.Status

		if order.Status.IsTerminal() {
			return fmt.Errorf("order %d is %s: %w", orderID, order.Status, entities.ErrAlreadyTerminal)
		}
		if !order.IsAssignedTo(riderID) {
			return fmt.Errorf("rider %d, order %d: %w", riderID, orderID, entities.ErrNotAssignedRider)
		}
		if !order.Status.CanTransitionTo(target) {
			return fmt.Errorf("%s -> %s: %w", order.Status, target, entities.ErrIllegalTransition)
		}

		now := time.Now().UTC()
		advanced, err = d.orders.Update(ctx, entities.StatusModify(orderID, target, now), order.Version)
		if err != nil {
			if errors.Is(err, entities.ErrConcurrentUpdate) {
				return fmt.Errorf("order %d changed concurrently: %w", orderID, entities.ErrInvalidState)
			}
			return fmt.Errorf("update order: %w", err)
		}

		if target.IsTerminal() {
			_, err = d.riderService.ReleaseActiveOrder(ctx, riderID, orderID)
			if err != nil {
				return fmt.Errorf("release rider: %w", err)
			}
		}

		err = d.orders.AppendTransitions(ctx, entities.StatusTransition{
			OrderID: orderID,
			From:    order.Status,
			To:      target,
			Actor:   entities.RiderActor(riderID),
			At:      now,
		})
		if err != nil {
			return fmt.Errorf("append transition: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveTransition(from.String(), target.String())
	return advanced, nil
}

// CancelOrder закрывает висящее предложение и освобождает курьера, если он был назначен.
// AssignedRiderID остается в заказе для аудита.
func (d *Delivery) CancelOrder(ctx context.Context, orderID int64, actor string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if actor == "" {
		actor = entities.ActorDispatcher
	}

	unlockOrder, err := d.locker.Lock(ctx, entities.OrderLockKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}
	defer unlockOrder()

	// назначенный курьер не меняется, пока держим блокировку заказа
	current, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if current.Status.IsTerminal() {
		return nil, fmt.Errorf("order %d is %s: %w", orderID, current.Status, entities.ErrAlreadyTerminal)
	}

	if current.AssignedRiderID != nil {
		unlockRider, err := d.locker.Lock(ctx, entities.RiderLockKey(*current.AssignedRiderID))
		if err != nil {
			return nil, fmt.Errorf("lock rider: %w", err)
		}
		defer unlockRider()
	}

	var (
		cancelled *entities.Order
		from      entities.OrderStatusType
	)
	err = d.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := d.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		from = order.Status

		if order.Status.IsTerminal() {
			return fmt.Errorf("order %d is %s: %w", orderID, order.Status, entities.ErrAlreadyTerminal)
		}

		now := time.Now().UTC()
		cancelled, err = d.orders.Update(ctx, entities.StatusModify(orderID, entities.OrderCancelled, now), order.Version)
		if err != nil {
			if errors.Is(err, entities.ErrConcurrentUpdate) {
				return fmt.Errorf("order %d changed concurrently: %w", orderID, entities.ErrInvalidState)
			}
			return fmt.Errorf("update order: %w", err)
		}

		if order.Status == entities.OrderAwaitingAssignment {
			if err = d.cancelPendingOffer(ctx, orderID, now); err != nil {
				return err
			}
		}

		if order.AssignedRiderID != nil {
			_, err = d.riderService.ReleaseActiveOrder(ctx, *order.AssignedRiderID, orderID)
			if err != nil {
				return fmt.Errorf("release rider: %w", err)
			}
		}

		err = d.orders.AppendTransitions(ctx, entities.StatusTransition{
			OrderID: orderID,
			From:    order.Status,
			To:      entities.OrderCancelled,
			Actor:   actor,
			At:      now,
		})
		if err != nil {
			return fmt.Errorf("append transition: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveTransition(from.String(), entities.OrderCancelled.String())
	return cancelled, nil
}

func (d *Delivery) GetOrderView(ctx context.Context, orderID int64) (*entities.OrderSnapshot, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	snapshot := entities.NewOrderSnapshot(*order)
	return &snapshot, nil
}

func (d *Delivery) GetOrderHistory(ctx context.Context, orderID int64) ([]entities.StatusTransition, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	if _, err := d.orders.GetByID(ctx, orderID); err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	transitions, err := d.orders.GetTransitions(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get transitions: %w", err)
	}

	return transitions, nil
}

func (d *Delivery) cancelPendingOffer(ctx context.Context, orderID int64, now time.Time) error {
	offer, err := d.offers.GetPendingByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get pending offer: %w", err)
	}

	_, err = d.offers.Resolve(ctx, entities.OfferResolve{
		OfferID:    offer.ID,
		Status:     entities.OfferCancelled,
		ResolvedAt: now,
	})
	if err != nil && !errors.Is(err, entities.ErrConcurrentUpdate) {
		return fmt.Errorf("cancel offer: %w", err)
	}
	return nil
}

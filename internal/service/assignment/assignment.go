package assignment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/metrics"
)

const dispatchBatchSize = 100

type Assignment struct {
	orders       OrderRepository
	offers       OfferRepository
	riderService RiderService
	timeFactory  OfferTimeFactory
	locker       Locker
	txManager    TxManager
}

func New(
	orders OrderRepository,
	offers OfferRepository,
	riderService RiderService,
	timeFactory OfferTimeFactory,
	locker Locker,
	txManager TxManager,
) *Assignment {
	return &Assignment{
		orders:       orders,
		offers:       offers,
		riderService: riderService,
		timeFactory:  timeFactory,
		locker:       locker,
		txManager:    txManager,
	}
}

// OfferOrder без кандидатов предлагает заказ всем курьерам, подходящим в момент вызова.
// Явные кандидаты, которые офлайн, заняты или неизвестны, отбрасываются.
func (a *Assignment) OfferOrder(ctx context.Context, orderID int64, candidates []int64) (*entities.Offer, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	for _, riderID := range candidates {
		if !isValidRiderID(riderID) {
			return nil, ErrInvalidRiderID
		}
	}
	candidates = slices.Clone(candidates)
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	unlock, err := a.locker.Lock(ctx, entities.OrderLockKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}
	defer unlock()

	var offer *entities.Offer
	err = a.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := a.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		if order.Status != entities.OrderAwaitingAssignment {
			return fmt.Errorf("offer order in status %s: %w", order.Status, entities.ErrInvalidState)
		}

		now := time.Now().UTC()
		pending, err := a.offers.GetPendingByOrderID(ctx, orderID)
		switch {
		case err == nil && pending.IsExpiredAt(now):
			// просроченное предложение еще не подобрала фоновая задача
			if _, err = a.expire(ctx, pending, now); err != nil {
				return err
			}
		case err == nil:
			return fmt.Errorf("order %d already offered: %w", orderID, entities.ErrInvalidState)
		case !errors.Is(err, entities.ErrNotFound):
			return fmt.Errorf("get pending offer: %w", err)
		}

		eligible, err := a.riderService.ListEligibleRiderIDs(ctx)
		if err != nil {
			return fmt.Errorf("list eligible riders: %w", err)
		}
		if len(candidates) == 0 {
			candidates = eligible
		} else {
			// явный список сужается до онлайн-курьеров без активного заказа
			candidates = slices.DeleteFunc(candidates, func(riderID int64) bool {
				return !slices.Contains(eligible, riderID)
			})
		}
		if len(candidates) == 0 {
			return ErrNoEligibleRiders
		}

		offer, err = a.offers.Create(ctx, entities.Offer{
			OrderID:    orderID,
			Candidates: candidates,
			Status:     entities.OfferPending,
			OfferedAt:  now,
			ExpiresAt:  a.timeFactory.CalculateExpiry(now),
		})
		if err != nil {
			if errors.Is(err, entities.ErrConflict) {
				return fmt.Errorf("order %d already offered: %w", orderID, entities.ErrInvalidState)
			}
			return fmt.Errorf("create offer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	OffersCreatedTotal.Inc()
	return offer, nil
}

// AcceptOffer захватывает заказ, затем курьера. Из гонки за один заказ выигрывает
// ровно один курьер, остальные получают ErrAlreadyAccepted.
func (a *Assignment) AcceptOffer(ctx context.Context, riderID, orderID int64) (*entities.Order, error) {
	if !isValidRiderID(riderID) {
		return nil, ErrInvalidRiderID
	}
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := a.acceptOffer(ctx, riderID, orderID)
	AcceptTotal.WithLabelValues(acceptResult(err)).Inc()
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (a *Assignment) acceptOffer(ctx context.Context, riderID, orderID int64) (*entities.Order, error) {
	unlockOrder, err := a.locker.Lock(ctx, entities.OrderLockKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}
	defer unlockOrder()

	unlockRider, err := a.locker.Lock(ctx, entities.RiderLockKey(riderID))
	if err != nil {
		return nil, fmt.Errorf("lock rider: %w", err)
	}
	defer unlockRider()

	var (
		accepted *entities.Order
		expired  bool
	)
	err = a.txManager.Do(ctx, func(ctx context.Context) error {
		accepted, expired = nil, false

		order, err := a.orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		if order.Status != entities.OrderAwaitingAssignment {
			if order.AssignedRiderID != nil && order.Status != entities.OrderCancelled {
				return fmt.Errorf("order %d: %w", orderID, entities.ErrAlreadyAccepted)
			}
			return fmt.Errorf("order %d in status %s: %w", orderID, order.Status, entities.ErrOrderNotPending)
		}

		offer, err := a.offers.GetPendingByOrderID(ctx, orderID)
		if err != nil {
			if errors.Is(err, entities.ErrNotFound) {
				return fmt.Errorf("order %d has no pending offer: %w", orderID, entities.ErrOrderNotPending)
			}
			return fmt.Errorf("get pending offer: %w", err)
		}

		now := time.Now().UTC()
		if offer.IsExpiredAt(now) {
			// истечение фиксируется, поэтому транзакция завершается без ошибки
			if _, err = a.expire(ctx, offer, now); err != nil {
				return err
			}
			expired = true
			return nil
		}

		rider, err := a.riderService.GetRider(ctx, riderID)
		if err != nil {
			return fmt.Errorf("get rider: %w", err)
		}

		if !offer.HasCandidate(riderID) {
			return fmt.Errorf("rider %d not offered order %d: %w", riderID, orderID, entities.ErrRiderIneligible)
		}
		if rider.Availability != entities.RiderOnline {
			return fmt.Errorf("rider %d is offline: %w", riderID, entities.ErrRiderIneligible)
		}
		if rider.ActiveOrderID != nil {
			return fmt.Errorf("rider %d busy with order %d: %w", riderID, *rider.ActiveOrderID, entities.ErrRiderIneligible)
		}

		modify := entities.StatusModify(orderID, entities.OrderAwaitingPickup, now)
		modify.AssignedRiderID = &riderID

		accepted, err = a.orders.Update(ctx, modify, order.Version)
		if err != nil {
			if errors.Is(err, entities.ErrConcurrentUpdate) {
				return fmt.Errorf("order %d: %w", orderID, entities.ErrAlreadyAccepted)
			}
			return fmt.Errorf("update order: %w", err)
		}

		_, err = a.offers.Resolve(ctx, entities.OfferResolve{
			OfferID:    offer.ID,
			Status:     entities.OfferAccepted,
			ResolvedAt: now,
			AcceptedBy: &riderID,
		})
		if err != nil {
			if errors.Is(err, entities.ErrConcurrentUpdate) {
				return fmt.Errorf("offer %d: %w", offer.ID, entities.ErrOrderNotPending)
			}
			return fmt.Errorf("resolve offer: %w", err)
		}

		_, err = a.riderService.BindActiveOrder(ctx, riderID, orderID)
		if err != nil {
			return err
		}

		err = a.orders.AppendTransitions(ctx, entities.StatusTransition{
			OrderID: orderID,
			From:    order.Status,
			To:      entities.OrderAwaitingPickup,
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

	if expired {
		return nil, fmt.Errorf("offer for order %d expired: %w", orderID, entities.ErrOrderNotPending)
	}

	metrics.ObserveTransition(entities.OrderAwaitingAssignment.String(), entities.OrderAwaitingPickup.String())
	return accepted, nil
}

// ExpireOffer заказ остается AWAITING_ASSIGNMENT без курьера и возвращается в пул.
func (a *Assignment) ExpireOffer(ctx context.Context, orderID int64) (*entities.Offer, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	return a.expireByOrderID(ctx, orderID, func(*entities.Offer, time.Time) bool { return true })
}

// ExpireDueOffers истекает все предложения с прошедшим сроком.
// Предложения, которые успели принять или отменить, пропускаются.
func (a *Assignment) ExpireDueOffers(ctx context.Context) (int64, error) {
	due, err := a.offers.ListDue(ctx, time.Now().UTC(), dispatchBatchSize)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("expire due offers timed out: %w", err)
		}
		return 0, fmt.Errorf("list due offers: %w", err)
	}

	var expiredCount int64
	for _, offer := range due {
		_, err := a.expireByOrderID(ctx, offer.OrderID, func(pending *entities.Offer, now time.Time) bool {
			return pending.IsExpiredAt(now)
		})
		if err != nil {
			if errors.Is(err, entities.ErrOrderNotPending) || errors.Is(err, entities.ErrNotFound) {
				continue
			}
			return expiredCount, fmt.Errorf("expire offer for order %d: %w", offer.OrderID, err)
		}
		expiredCount++
	}

	return expiredCount, nil
}

// DispatchPendingOrders повторно предлагает заказы из пула текущим подходящим курьерам.
func (a *Assignment) DispatchPendingOrders(ctx context.Context) (int64, error) {
	eligible, err := a.riderService.ListEligibleRiderIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list eligible riders: %w", err)
	}
	if len(eligible) == 0 {
		return 0, nil
	}

	orders, err := a.orders.ListAwaitingAssignment(ctx, dispatchBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list awaiting orders: %w", err)
	}

	var offered int64
	for _, order := range orders {
		_, err := a.OfferOrder(ctx, order.ID, nil)
		if err != nil {
			// заказ успели предложить, принять или отменить
			if errors.Is(err, entities.ErrInvalidState) {
				continue
			}
			if errors.Is(err, ErrNoEligibleRiders) {
				break
			}
			return offered, fmt.Errorf("offer order %d: %w", order.ID, err)
		}
		offered++
	}

	return offered, nil
}

func (a *Assignment) GetRiderDashboard(ctx context.Context, riderID int64) (*entities.RiderDashboard, error) {
	if !isValidRiderID(riderID) {
		return nil, ErrInvalidRiderID
	}

	rider, err := a.riderService.GetRider(ctx, riderID)
	if err != nil {
		return nil, fmt.Errorf("get rider: %w", err)
	}

	dashboard := &entities.RiderDashboard{
		Rider:         *rider,
		PendingOffers: []entities.OfferView{},
	}

	if rider.ActiveOrderID != nil {
		order, err := a.orders.GetByID(ctx, *rider.ActiveOrderID)
		if err != nil {
			return nil, fmt.Errorf("get active order: %w", err)
		}
		snapshot := entities.NewOrderSnapshot(*order)
		dashboard.ActiveDelivery = &snapshot
	}

	if !rider.IsEligible() {
		return dashboard, nil
	}

	offers, err := a.offers.ListPendingByCandidate(ctx, riderID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list pending offers: %w", err)
	}
	if len(offers) == 0 {
		return dashboard, nil
	}

	orderIDs := make([]int64, 0, len(offers))
	for _, offer := range offers {
		orderIDs = append(orderIDs, offer.OrderID)
	}

	orders, err := a.orders.GetByIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("get offered orders: %w", err)
	}

	ordersByID := make(map[int64]entities.Order, len(orders))
	for _, order := range orders {
		ordersByID[order.ID] = order
	}

	for _, offer := range offers {
		order, ok := ordersByID[offer.OrderID]
		if !ok || order.Status != entities.OrderAwaitingAssignment {
			continue
		}
		dashboard.PendingOffers = append(dashboard.PendingOffers, entities.OfferView{
			Offer: offer,
			Order: entities.NewOrderSnapshot(order),
		})
	}

	return dashboard, nil
}

func (a *Assignment) expireByOrderID(
	ctx context.Context,
	orderID int64,
	shouldExpire func(pending *entities.Offer, now time.Time) bool,
) (*entities.Offer, error) {
	unlock, err := a.locker.Lock(ctx, entities.OrderLockKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}
	defer unlock()

	var expired *entities.Offer
	err = a.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := a.orders.GetByID(ctx, orderID); err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		pending, err := a.offers.GetPendingByOrderID(ctx, orderID)
		if err != nil {
			if errors.Is(err, entities.ErrNotFound) {
				return fmt.Errorf("order %d has no pending offer: %w", orderID, entities.ErrOrderNotPending)
			}
			return fmt.Errorf("get pending offer: %w", err)
		}

		now := time.Now().UTC()
		if !shouldExpire(pending, now) {
			return fmt.Errorf("offer %d not due: %w", pending.ID, entities.ErrOrderNotPending)
		}

		expired, err = a.expire(ctx, pending, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return expired, nil
}

func (a *Assignment) expire(ctx context.Context, offer *entities.Offer, now time.Time) (*entities.Offer, error) {
	expired, err := a.offers.Resolve(ctx, entities.OfferResolve{
		OfferID:    offer.ID,
		Status:     entities.OfferExpired,
		ResolvedAt: now,
	})
	if err != nil {
		if errors.Is(err, entities.ErrConcurrentUpdate) {
			return nil, fmt.Errorf("offer %d: %w", offer.ID, entities.ErrOrderNotPending)
		}
		return nil, fmt.Errorf("expire offer: %w", err)
	}

	OffersExpiredTotal.Inc()
	return expired, nil
}

func acceptResult(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, entities.ErrAlreadyAccepted):
		return "already_accepted"
	case errors.Is(err, entities.ErrOrderNotPending):
		return "not_pending"
	case errors.Is(err, entities.ErrRiderIneligible):
		return "ineligible"
	case errors.Is(err, entities.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

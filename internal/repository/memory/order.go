package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"dispatch/internal/entities"
)

type OrderRepository struct {
	store *Store
}

func (r *OrderRepository) Create(_ context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if orderModify.ID == nil {
		return nil, errors.New("memory order create: missing id")
	}
	if _, ok := s.orders[*orderModify.ID]; ok {
		return nil, entities.ErrConflict
	}

	now := s.now()
	order := &entities.Order{
		ID:        *orderModify.ID,
		Status:    entities.DefaultOrderStatus,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyOrderModify(order, &orderModify)

	s.orders[order.ID] = order
	return copyOrder(order), nil
}

func (r *OrderRepository) Update(_ context.Context, orderModify entities.OrderModify, expectedVersion int64) (*entities.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if orderModify.ID == nil {
		return nil, errors.New("memory order update: missing id")
	}
	order, ok := s.orders[*orderModify.ID]
	if !ok || order.Version != expectedVersion {
		return nil, entities.ErrConcurrentUpdate
	}

	applyOrderModify(order, &orderModify)
	order.Version++
	order.UpdatedAt = s.now()
	return copyOrder(order), nil
}

func (r *OrderRepository) GetByID(_ context.Context, id int64) (*entities.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, entities.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (r *OrderRepository) GetByIDs(_ context.Context, ids []int64) ([]entities.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.Order, 0, len(ids))
	for _, id := range ids {
		if order, ok := s.orders[id]; ok {
			result = append(result, *copyOrder(order))
		}
	}
	slices.SortFunc(result, func(a, b entities.Order) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (r *OrderRepository) ListAwaitingAssignment(_ context.Context, limit uint64) ([]entities.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	offered := make(map[int64]struct{})
	for _, offer := range s.offers {
		if offer.Status == entities.OfferPending {
			offered[offer.OrderID] = struct{}{}
		}
	}

	result := make([]entities.Order, 0)
	for _, order := range s.orders {
		if order.Status != entities.OrderAwaitingAssignment {
			continue
		}
		if _, ok := offered[order.ID]; ok {
			continue
		}
		result = append(result, *copyOrder(order))
	}

	slices.SortFunc(result, func(a, b entities.Order) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if limit > 0 && uint64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *OrderRepository) AppendTransitions(_ context.Context, transitions ...entities.StatusTransition) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range transitions {
		if _, ok := s.orders[t.OrderID]; !ok {
			return entities.ErrOrderNotFound
		}
	}
	for _, t := range transitions {
		s.transitions[t.OrderID] = append(s.transitions[t.OrderID], t)
	}
	return nil
}

func (r *OrderRepository) GetTransitions(_ context.Context, orderID int64) ([]entities.StatusTransition, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.transitions[orderID]), nil
}

func applyOrderModify(order *entities.Order, m *entities.OrderModify) {
	if m.Restaurant != nil {
		order.Restaurant = *m.Restaurant
	}
	if m.PickupAddress != nil {
		order.PickupAddress = *m.PickupAddress
	}
	if m.CustomerName != nil {
		order.CustomerName = *m.CustomerName
	}
	if m.DeliveryAddress != nil {
		order.DeliveryAddress = *m.DeliveryAddress
	}
	if m.DistanceMeters != nil {
		order.DistanceMeters = *m.DistanceMeters
	}
	if m.TotalCents != nil {
		order.TotalCents = *m.TotalCents
	}
	if m.Status != nil {
		order.Status = *m.Status
	}
	if m.AssignedRiderID != nil {
		order.AssignedRiderID = copyInt64(m.AssignedRiderID)
	}
	if m.AssignedAt != nil {
		order.AssignedAt = copyTime(m.AssignedAt)
	}
	if m.PickedUpAt != nil {
		order.PickedUpAt = copyTime(m.PickedUpAt)
	}
	if m.DeliveredAt != nil {
		order.DeliveredAt = copyTime(m.DeliveredAt)
	}
	if m.CancelledAt != nil {
		order.CancelledAt = copyTime(m.CancelledAt)
	}
}

package memory

import (
	"cmp"
	"context"
	"slices"

	"dispatch/internal/entities"
)

type RiderRepository struct {
	store *Store
}

func (r *RiderRepository) Create(_ context.Context, riderModify entities.RiderModify) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.riders {
		if riderModify.Phone != nil && existing.Phone == *riderModify.Phone {
			return 0, entities.ErrConflict
		}
	}

	var id int64
	if riderModify.ID != nil {
		id = *riderModify.ID
		if _, ok := s.riders[id]; ok {
			return 0, entities.ErrConflict
		}
	} else {
		for {
			s.nextRiderID++
			if _, ok := s.riders[s.nextRiderID]; !ok {
				break
			}
		}
		id = s.nextRiderID
	}

	availability := entities.DefaultRiderAvailability
	if riderModify.Availability != nil {
		availability = *riderModify.Availability
	}

	now := s.now()
	rider := &entities.Rider{
		ID:           id,
		Availability: availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if riderModify.Name != nil {
		rider.Name = *riderModify.Name
	}
	if riderModify.Phone != nil {
		rider.Phone = *riderModify.Phone
	}

	s.riders[id] = rider
	return id, nil
}

func (r *RiderRepository) GetByID(_ context.Context, id int64) (*entities.Rider, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rider, ok := s.riders[id]
	if !ok {
		return nil, entities.ErrRiderNotFound
	}
	return copyRider(rider), nil
}

func (r *RiderRepository) GetAll(_ context.Context) ([]entities.Rider, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.Rider, 0, len(s.riders))
	for _, rider := range s.riders {
		result = append(result, *copyRider(rider))
	}
	slices.SortFunc(result, func(a, b entities.Rider) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (r *RiderRepository) Update(_ context.Context, riderModify entities.RiderModify) (*entities.Rider, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if riderModify.ID == nil {
		return nil, entities.ErrRiderNotFound
	}
	rider, ok := s.riders[*riderModify.ID]
	if !ok {
		return nil, entities.ErrRiderNotFound
	}

	if riderModify.Phone != nil {
		for id, existing := range s.riders {
			if id != rider.ID && existing.Phone == *riderModify.Phone {
				return nil, entities.ErrConflict
			}
		}
		rider.Phone = *riderModify.Phone
	}
	if riderModify.Name != nil {
		rider.Name = *riderModify.Name
	}
	if riderModify.Availability != nil {
		rider.Availability = *riderModify.Availability
	}
	rider.UpdatedAt = s.now()

	return copyRider(rider), nil
}

func (r *RiderRepository) BindActiveOrder(_ context.Context, riderID, orderID int64) (*entities.Rider, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rider, ok := s.riders[riderID]
	if !ok || !rider.IsEligible() {
		return nil, entities.ErrConcurrentUpdate
	}

	rider.ActiveOrderID = &orderID
	rider.UpdatedAt = s.now()
	return copyRider(rider), nil
}

func (r *RiderRepository) ReleaseActiveOrder(_ context.Context, riderID, orderID int64) (*entities.Rider, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rider, ok := s.riders[riderID]
	if !ok || rider.ActiveOrderID == nil || *rider.ActiveOrderID != orderID {
		return nil, entities.ErrConcurrentUpdate
	}

	rider.ActiveOrderID = nil
	rider.UpdatedAt = s.now()
	return copyRider(rider), nil
}

func (r *RiderRepository) ListEligibleIDs(_ context.Context) ([]int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.riders))
	for id, rider := range s.riders {
		if rider.IsEligible() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

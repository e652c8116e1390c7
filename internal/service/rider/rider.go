package rider

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
)

type Rider struct {
	repository Repository
	locker     Locker
	txManager  TxManager
}

func New(repository Repository, locker Locker, txManager TxManager) *Rider {
	return &Rider{
		repository: repository,
		locker:     locker,
		txManager:  txManager,
	}
}

func (s *Rider) CreateRider(ctx context.Context, riderModify entities.RiderModify) (int64, error) {
	if riderModify.Name == nil || riderModify.Phone == nil {
		return 0, ErrMissingRequiredFields
	}

	if riderModify.ID != nil && !isValidRiderID(*riderModify.ID) {
		return 0, ErrInvalidRiderID
	}
	if !isValidName(*riderModify.Name) {
		return 0, ErrInvalidName
	}
	if !isValidPhone(*riderModify.Phone) {
		return 0, ErrInvalidPhone
	}

	if riderModify.Availability == nil {
		availability := entities.DefaultRiderAvailability
		riderModify.Availability = &availability
	}
	if !isValidAvailability(*riderModify.Availability) {
		return 0, ErrInvalidAvailability
	}

	id, err := s.repository.Create(ctx, riderModify)
	if err != nil {
		return 0, fmt.Errorf("create rider: %w", err)
	}

	return id, nil
}

func (s *Rider) GetRider(ctx context.Context, id int64) (*entities.Rider, error) {
	if !isValidRiderID(id) {
		return nil, ErrInvalidRiderID
	}

	rider, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rider: %w", err)
	}

	return rider, nil
}

func (s *Rider) GetRiders(ctx context.Context) ([]entities.Rider, error) {
	riders, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get riders: %w", err)
	}

	return riders, nil
}

// ToggleAvailability выйти онлайн можно всегда. Уход в офлайн не прерывает активную
// доставку, только убирает курьера из кандидатов на новые предложения.
func (s *Rider) ToggleAvailability(ctx context.Context, riderID int64, online bool) (*entities.Rider, error) {
	if !isValidRiderID(riderID) {
		return nil, ErrInvalidRiderID
	}

	unlock, err := s.locker.Lock(ctx, entities.RiderLockKey(riderID))
	if err != nil {
		return nil, fmt.Errorf("lock rider: %w", err)
	}
	defer unlock()

	availability := entities.AvailabilityFromBool(online)

	var rider *entities.Rider
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, riderID)
		if err != nil {
			return fmt.Errorf("get rider: %w", err)
		}

		if current.Availability == availability {
			rider = current
			return nil
		}

		rider, err = s.repository.Update(ctx, entities.RiderModify{
			ID:           &riderID,
			Availability: &availability,
		})
		if err != nil {
			return fmt.Errorf("update availability: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	AvailabilityChangesTotal.WithLabelValues(availability.String()).Inc()
	return rider, nil
}

// BindActiveOrder вызывающий уже держит блокировку курьера.
func (s *Rider) BindActiveOrder(ctx context.Context, riderID, orderID int64) (*entities.Rider, error) {
	rider, err := s.repository.BindActiveOrder(ctx, riderID, orderID)
	if err != nil {
		if errors.Is(err, entities.ErrConcurrentUpdate) {
			return nil, fmt.Errorf("bind active order: %w", entities.ErrRiderIneligible)
		}
		return nil, fmt.Errorf("bind active order: %w", err)
	}

	return rider, nil
}

// ReleaseActiveOrder вызывающий уже держит блокировку курьера.
// Привязка к другому заказу не трогается.
func (s *Rider) ReleaseActiveOrder(ctx context.Context, riderID, orderID int64) (*entities.Rider, error) {
	rider, err := s.repository.ReleaseActiveOrder(ctx, riderID, orderID)
	if err != nil {
		if errors.Is(err, entities.ErrConcurrentUpdate) {
			return nil, fmt.Errorf("release active order %d: %w", orderID, entities.ErrInvalidState)
		}
		return nil, fmt.Errorf("release active order: %w", err)
	}

	return rider, nil
}

func (s *Rider) ListEligibleRiderIDs(ctx context.Context) ([]int64, error) {
	ids, err := s.repository.ListEligibleIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list eligible riders: %w", err)
	}

	return ids, nil
}

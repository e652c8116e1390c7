package memory

import (
	"slices"
	"sync"
	"time"

	"dispatch/internal/entities"
)

// Store хранилище в памяти процесса с теми же контрактами, что и postgres репозитории,
// включая compare-and-set проверки. Наружу отдаются только копии.
type Store struct {
	mu sync.RWMutex

	riders      map[int64]*entities.Rider
	orders      map[int64]*entities.Order
	offers      map[int64]*entities.Offer
	transitions map[int64][]entities.StatusTransition

	nextRiderID int64
	nextOfferID int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		riders:      make(map[int64]*entities.Rider),
		orders:      make(map[int64]*entities.Order),
		offers:      make(map[int64]*entities.Offer),
		transitions: make(map[int64][]entities.StatusTransition),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *Store) Riders() *RiderRepository {
	return &RiderRepository{store: s}
}

func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{store: s}
}

func (s *Store) Offers() *OfferRepository {
	return &OfferRepository{store: s}
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyRider(r *entities.Rider) *entities.Rider {
	c := *r
	c.ActiveOrderID = copyInt64(r.ActiveOrderID)
	return &c
}

func copyOrder(o *entities.Order) *entities.Order {
	c := *o
	c.AssignedRiderID = copyInt64(o.AssignedRiderID)
	c.AssignedAt = copyTime(o.AssignedAt)
	c.PickedUpAt = copyTime(o.PickedUpAt)
	c.DeliveredAt = copyTime(o.DeliveredAt)
	c.CancelledAt = copyTime(o.CancelledAt)
	return &c
}

func copyOffer(o *entities.Offer) *entities.Offer {
	c := *o
	c.Candidates = slices.Clone(o.Candidates)
	c.ResolvedAt = copyTime(o.ResolvedAt)
	c.AcceptedBy = copyInt64(o.AcceptedBy)
	return &c
}

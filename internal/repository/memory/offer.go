package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"dispatch/internal/entities"
)

type OfferRepository struct {
	store *Store
}

func (r *OfferRepository) Create(_ context.Context, offer entities.Offer) (*entities.Offer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[offer.OrderID]; !ok {
		return nil, entities.ErrOrderNotFound
	}
	for _, existing := range s.offers {
		if existing.OrderID == offer.OrderID && existing.Status == entities.OfferPending {
			return nil, entities.ErrConflict
		}
	}

	s.nextOfferID++
	created := copyOffer(&offer)
	created.ID = s.nextOfferID
	created.Status = entities.OfferPending
	created.ResolvedAt = nil
	created.AcceptedBy = nil

	s.offers[created.ID] = created
	return copyOffer(created), nil
}

func (r *OfferRepository) GetPendingByOrderID(_ context.Context, orderID int64) (*entities.Offer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, offer := range s.offers {
		if offer.OrderID == orderID && offer.Status == entities.OfferPending {
			return copyOffer(offer), nil
		}
	}
	return nil, entities.ErrOfferNotFound
}

func (r *OfferRepository) Resolve(_ context.Context, resolve entities.OfferResolve) (*entities.Offer, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, ok := s.offers[resolve.OfferID]
	if !ok || offer.Status != entities.OfferPending {
		return nil, entities.ErrConcurrentUpdate
	}

	resolvedAt := resolve.ResolvedAt
	offer.Status = resolve.Status
	offer.ResolvedAt = &resolvedAt
	offer.AcceptedBy = copyInt64(resolve.AcceptedBy)
	return copyOffer(offer), nil
}

func (r *OfferRepository) ListPendingByCandidate(_ context.Context, riderID int64, now time.Time) ([]entities.Offer, error) {
	return r.list(func(o *entities.Offer) bool {
		return o.Status == entities.OfferPending && o.HasCandidate(riderID) && !o.IsExpiredAt(now)
	}, 0, func(a, b entities.Offer) int {
		if c := a.OfferedAt.Compare(b.OfferedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}), nil
}

func (r *OfferRepository) ListDue(_ context.Context, now time.Time, limit uint64) ([]entities.Offer, error) {
	return r.list(func(o *entities.Offer) bool {
		return o.Status == entities.OfferPending && o.IsExpiredAt(now)
	}, limit, func(a, b entities.Offer) int {
		if c := a.ExpiresAt.Compare(b.ExpiresAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}), nil
}

func (r *OfferRepository) list(match func(*entities.Offer) bool, limit uint64, less func(a, b entities.Offer) int) []entities.Offer {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.Offer, 0)
	for _, offer := range s.offers {
		if match(offer) {
			result = append(result, *copyOffer(offer))
		}
	}
	slices.SortFunc(result, less)

	if limit > 0 && uint64(len(result)) > limit {
		result = result[:limit]
	}
	return result
}

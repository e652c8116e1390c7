//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=assignment_test
package assignment

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/keylock"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Order, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify, expectedVersion int64) (*entities.Order, error)
	ListAwaitingAssignment(ctx context.Context, limit uint64) ([]entities.Order, error)
	AppendTransitions(ctx context.Context, transitions ...entities.StatusTransition) error
}

type OfferRepository interface {
	Create(ctx context.Context, offer entities.Offer) (*entities.Offer, error)
	GetPendingByOrderID(ctx context.Context, orderID int64) (*entities.Offer, error)
	Resolve(ctx context.Context, resolve entities.OfferResolve) (*entities.Offer, error)
	ListPendingByCandidate(ctx context.Context, riderID int64, now time.Time) ([]entities.Offer, error)
	ListDue(ctx context.Context, now time.Time, limit uint64) ([]entities.Offer, error)
}

type RiderService interface {
	GetRider(ctx context.Context, id int64) (*entities.Rider, error)
	BindActiveOrder(ctx context.Context, riderID, orderID int64) (*entities.Rider, error)
	ListEligibleRiderIDs(ctx context.Context) ([]int64, error)
}

type OfferTimeFactory interface {
	CalculateExpiry(baseTime time.Time) time.Time
}

type Locker interface {
	Lock(ctx context.Context, key string) (keylock.Unlock, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

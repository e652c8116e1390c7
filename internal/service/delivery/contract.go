//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/keylock"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify, expectedVersion int64) (*entities.Order, error)
	AppendTransitions(ctx context.Context, transitions ...entities.StatusTransition) error
	GetTransitions(ctx context.Context, orderID int64) ([]entities.StatusTransition, error)
}

type OfferRepository interface {
	GetPendingByOrderID(ctx context.Context, orderID int64) (*entities.Offer, error)
	Resolve(ctx context.Context, resolve entities.OfferResolve) (*entities.Offer, error)
}

type RiderService interface {
	ReleaseActiveOrder(ctx context.Context, riderID, orderID int64) (*entities.Rider, error)
}

type Locker interface {
	Lock(ctx context.Context, key string) (keylock.Unlock, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

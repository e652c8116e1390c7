//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_test
package rider

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/keylock"
)

type Repository interface {
	Create(ctx context.Context, riderModifyEntity entities.RiderModify) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Rider, error)
	GetAll(ctx context.Context) ([]entities.Rider, error)
	Update(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error)

	BindActiveOrder(ctx context.Context, riderID, orderID int64) (*entities.Rider, error)
	ReleaseActiveOrder(ctx context.Context, riderID, orderID int64) (*entities.Rider, error)
	ListEligibleIDs(ctx context.Context) ([]int64, error)
}

type Locker interface {
	Lock(ctx context.Context, key string) (keylock.Unlock, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
	AppendTransitions(ctx context.Context, transitions ...entities.StatusTransition) error
}

type AssignmentService interface {
	OfferOrder(ctx context.Context, orderID int64, candidates []int64) (*entities.Offer, error)
}

type DeliveryService interface {
	CancelOrder(ctx context.Context, orderID int64, actor string) (*entities.Order, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type (
	ExecuteFn      func(ctx context.Context, orderID int64) error
	HandlerFactory interface {
		GetHandler(eventType entities.OrderEventType) (ExecuteFn, error)
	}
)

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_offer_expire_post_test
package order_offer_expire_post

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ExpireOffer(ctx context.Context, orderID int64) (*entities.Offer, error)
}

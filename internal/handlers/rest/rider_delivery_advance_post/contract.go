//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_delivery_advance_post_test
package rider_delivery_advance_post

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
	AdvanceDelivery(ctx context.Context, riderID, orderID int64, target entities.OrderStatusType) (*entities.Order, error)
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type AssignmentService interface {
	AcceptOffer(ctx context.Context, riderID, orderID int64) (*entities.Order, error)
	GetRiderDashboard(ctx context.Context, riderID int64) (*entities.RiderDashboard, error)
}

type DeliveryService interface {
	AdvanceDelivery(ctx context.Context, riderID, orderID int64, target entities.OrderStatusType) (*entities.Order, error)
	GetOrderView(ctx context.Context, orderID int64) (*entities.OrderSnapshot, error)
}

type RiderService interface {
	ToggleAvailability(ctx context.Context, riderID int64, online bool) (*entities.Rider, error)
}

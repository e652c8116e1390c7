package order_dispatch

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type Service interface {
	DispatchPendingOrders(ctx context.Context) (int64, error)
}

// OrderDispatch предлагает заказы из пула, оставшиеся без курьера после истечения предложений.
type OrderDispatch struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewOrderDispatch(log logger.Logger, service Service, interval time.Duration) *OrderDispatch {
	return &OrderDispatch{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (o *OrderDispatch) TTL() time.Duration {
	return o.interval
}

func (o *OrderDispatch) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	offered, err := o.service.DispatchPendingOrders(ctxWithTimeout)
	if err != nil {
		return err
	}

	if offered > 0 {
		o.log.With(
			logger.NewField("offered_orders", offered),
		).Info("order dispatch")
	}

	return nil
}

func (o *OrderDispatch) Info() string {
	return "order dispatch"
}

package app

import (
	"context"

	"dispatch/internal/handlers/grpc/dispatch"
	"dispatch/internal/handlers/kafka-consumer/order_events"
	"dispatch/internal/handlers/rest/order_cancel_post"
	"dispatch/internal/handlers/rest/order_get"
	"dispatch/internal/handlers/rest/order_history_get"
	"dispatch/internal/handlers/rest/order_offer_expire_post"
	"dispatch/internal/handlers/rest/order_offer_post"
	"dispatch/internal/handlers/rest/order_post"
	"dispatch/internal/handlers/rest/rider_availability_put"
	"dispatch/internal/handlers/rest/rider_dashboard_get"
	"dispatch/internal/handlers/rest/rider_delivery_advance_post"
	"dispatch/internal/handlers/rest/rider_get"
	"dispatch/internal/handlers/rest/rider_offer_accept_post"
	"dispatch/internal/handlers/rest/rider_post"
	"dispatch/internal/handlers/rest/riders_get"
	"dispatch/internal/handlers/tasks/offer_expiry"
	"dispatch/internal/handlers/tasks/order_dispatch"
	"dispatch/internal/pkg/config"
	offerTime "dispatch/internal/pkg/factory/offer_expiry"
	"dispatch/internal/pkg/factory/order_handle"
	"dispatch/internal/repository/memory"
	offerRepo "dispatch/internal/repository/offer"
	orderRepo "dispatch/internal/repository/order"
	riderRepo "dispatch/internal/repository/rider"
	assignmentService "dispatch/internal/service/assignment"
	deliveryService "dispatch/internal/service/delivery"
	orderService "dispatch/internal/service/order"
	riderService "dispatch/internal/service/rider"
	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Application struct {
	ServiceOrder      ServiceOrder
	ServiceRider      ServiceRider
	ServiceAssignment ServiceAssignment
	ServiceDelivery   ServiceDelivery
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	order_post.Service
}

type ServiceRider interface {
	rider_post.Service
	rider_get.Service
	riders_get.Service
	rider_availability_put.Service
	dispatch.RiderService
}

type ServiceAssignment interface {
	order_offer_post.Service
	order_offer_expire_post.Service
	rider_offer_accept_post.Service
	rider_dashboard_get.Service
	dispatch.AssignmentService
}

type ServiceDelivery interface {
	order_get.Service
	order_history_get.Service
	order_cancel_post.Service
	rider_delivery_advance_post.Service
	dispatch.DeliveryService
}

type KafkaWorkerApp struct {
	OrderService *orderService.Service
}

var _ order_events.Service = (*orderService.Service)(nil)

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideMemoryRiders(store *memory.Store) *memory.RiderRepository {
	return store.Riders()
}

func provideMemoryOrders(store *memory.Store) *memory.OrderRepository {
	return store.Orders()
}

func provideMemoryOffers(store *memory.Store) *memory.OfferRepository {
	return store.Offers()
}

var (
	_ riderService.Repository           = (*riderRepo.Repository)(nil)
	_ assignmentService.OrderRepository = (*orderRepo.Repository)(nil)
	_ assignmentService.OfferRepository = (*offerRepo.Repository)(nil)
)

func provideServiceRider(
	repository riderService.Repository,
	locker riderService.Locker,
	txManager riderService.TxManager,
) *riderService.Rider {
	return riderService.New(repository, locker, txManager)
}

func provideServiceAssignment(
	orders assignmentService.OrderRepository,
	offers assignmentService.OfferRepository,
	riders assignmentService.RiderService,
	timeFactory assignmentService.OfferTimeFactory,
	locker assignmentService.Locker,
	txManager assignmentService.TxManager,
) *assignmentService.Assignment {
	return assignmentService.New(orders, offers, riders, timeFactory, locker, txManager)
}

func provideServiceDelivery(
	orders deliveryService.OrderRepository,
	offers deliveryService.OfferRepository,
	riders deliveryService.RiderService,
	locker deliveryService.Locker,
	txManager deliveryService.TxManager,
) *deliveryService.Delivery {
	return deliveryService.New(orders, offers, riders, locker, txManager)
}

func provideServiceOrder(
	repository orderService.Repository,
	handlerFactory orderService.HandlerFactory,
	txManager orderService.TxManager,
) *orderService.Service {
	return orderService.New(repository, handlerFactory, txManager)
}

func provideEventHandlerFactory(
	assignment orderService.AssignmentService,
	delivery orderService.DeliveryService,
) *order_handle.EventHandlerFactory {
	return order_handle.NewEventHandlerFactory(assignment, delivery)
}

func provideOfferTimeFactory(cfg *config.Config) *offerTime.OfferTimeFactory {
	return offerTime.New(cfg.Dispatch.OfferTTL)
}

func provideOfferExpiryTask(
	log logger.Logger,
	service *assignmentService.Assignment,
	cfg *config.Config,
) *offer_expiry.OfferExpiry {
	return offer_expiry.NewOfferExpiry(log, service, cfg.Tasks.OfferExpiryInterval)
}

func provideOrderDispatchTask(
	log logger.Logger,
	service *assignmentService.Assignment,
	cfg *config.Config,
) *order_dispatch.OrderDispatch {
	return order_dispatch.NewOrderDispatch(log, service, cfg.Tasks.OrderDispatchInterval)
}

func provideTaskList(
	offerExpiryTask *offer_expiry.OfferExpiry,
	orderDispatchTask *order_dispatch.OrderDispatch,
) []background.Task {
	return []background.Task{
		offerExpiryTask,
		orderDispatchTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/factory/offer_expiry"
	"dispatch/internal/pkg/factory/order_handle"
	"dispatch/internal/repository"
	"dispatch/internal/repository/memory"
	offerRepo "dispatch/internal/repository/offer"
	orderRepo "dispatch/internal/repository/order"
	riderRepo "dispatch/internal/repository/rider"
	assignmentService "dispatch/internal/service/assignment"
	deliveryService "dispatch/internal/service/delivery"
	orderService "dispatch/internal/service/order"
	riderService "dispatch/internal/service/rider"
	"dispatch/pkg/keylock"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

var serviceSet = wire.NewSet(
	provideServiceRider,
	provideServiceAssignment,
	provideServiceDelivery,
	provideServiceOrder,
	provideEventHandlerFactory,
	provideOfferTimeFactory,

	wire.Bind(new(assignmentService.RiderService), new(*riderService.Rider)),
	wire.Bind(new(assignmentService.OfferTimeFactory), new(*offer_expiry.OfferTimeFactory)),
	wire.Bind(new(deliveryService.RiderService), new(*riderService.Rider)),
	wire.Bind(new(orderService.AssignmentService), new(*assignmentService.Assignment)),
	wire.Bind(new(orderService.DeliveryService), new(*deliveryService.Delivery)),
	wire.Bind(new(orderService.HandlerFactory), new(*order_handle.EventHandlerFactory)),

	wire.Bind(new(riderService.Locker), new(keylock.Locker)),
	wire.Bind(new(assignmentService.Locker), new(keylock.Locker)),
	wire.Bind(new(deliveryService.Locker), new(keylock.Locker)),
)

var postgresSet = wire.NewSet(
	provideTxManager,
	provideQuerier,
	riderRepo.New,
	orderRepo.New,
	offerRepo.New,

	wire.Bind(new(repository.Querier), new(*querier.Querier)),

	wire.Bind(new(riderService.Repository), new(*riderRepo.Repository)),
	wire.Bind(new(assignmentService.OrderRepository), new(*orderRepo.Repository)),
	wire.Bind(new(assignmentService.OfferRepository), new(*offerRepo.Repository)),
	wire.Bind(new(deliveryService.OrderRepository), new(*orderRepo.Repository)),
	wire.Bind(new(deliveryService.OfferRepository), new(*offerRepo.Repository)),
	wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),

	wire.Bind(new(riderService.TxManager), new(*tx.Manager)),
	wire.Bind(new(assignmentService.TxManager), new(*tx.Manager)),
	wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),
	wire.Bind(new(orderService.TxManager), new(*tx.Manager)),
)

var memorySet = wire.NewSet(
	tx.NewNop,
	provideMemoryRiders,
	provideMemoryOrders,
	provideMemoryOffers,

	wire.Bind(new(riderService.Repository), new(*memory.RiderRepository)),
	wire.Bind(new(assignmentService.OrderRepository), new(*memory.OrderRepository)),
	wire.Bind(new(assignmentService.OfferRepository), new(*memory.OfferRepository)),
	wire.Bind(new(deliveryService.OrderRepository), new(*memory.OrderRepository)),
	wire.Bind(new(deliveryService.OfferRepository), new(*memory.OfferRepository)),
	wire.Bind(new(orderService.Repository), new(*memory.OrderRepository)),

	wire.Bind(new(riderService.TxManager), new(*tx.Nop)),
	wire.Bind(new(assignmentService.TxManager), new(*tx.Nop)),
	wire.Bind(new(deliveryService.TxManager), new(*tx.Nop)),
	wire.Bind(new(orderService.TxManager), new(*tx.Nop)),
)

var applicationSet = wire.NewSet(
	provideOfferExpiryTask,
	provideOrderDispatchTask,
	provideTaskList,
	provideBackgroundWorkers,

	wire.Struct(new(Application), "*"),

	wire.Bind(new(ServiceOrder), new(*orderService.Service)),
	wire.Bind(new(ServiceRider), new(*riderService.Rider)),
	wire.Bind(new(ServiceAssignment), new(*assignmentService.Assignment)),
	wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
)

// InitializeApplication для HTTP/gRPC сервиса (cmd/service) на postgres
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	locker keylock.Locker,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(postgresSet, serviceSet, applicationSet)
	return &Application{}, nil
}

// InitializeMemoryApplication для локального запуска без базы, состояние живет до рестарта
func InitializeMemoryApplication(
	ctx context.Context,
	log logger.Logger,
	store *memory.Store,
	locker keylock.Locker,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(memorySet, serviceSet, applicationSet)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-order-events)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	locker keylock.Locker,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		postgresSet,
		serviceSet,
		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

// InitializeMemoryKafkaWorkerApp воркер с хранилищем в памяти, только для отладки консьюмера
func InitializeMemoryKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	store *memory.Store,
	locker keylock.Locker,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		memorySet,
		serviceSet,
		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

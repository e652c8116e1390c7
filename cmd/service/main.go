package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "dispatch/internal/app"
	"dispatch/internal/handlers/grpc/dispatch"
	"dispatch/internal/handlers/rest/healthcheck_head"
	"dispatch/internal/handlers/rest/order_cancel_post"
	"dispatch/internal/handlers/rest/order_get"
	"dispatch/internal/handlers/rest/order_history_get"
	"dispatch/internal/handlers/rest/order_offer_expire_post"
	"dispatch/internal/handlers/rest/order_offer_post"
	"dispatch/internal/handlers/rest/order_post"
	"dispatch/internal/handlers/rest/ping_get"
	"dispatch/internal/handlers/rest/rider_availability_put"
	"dispatch/internal/handlers/rest/rider_dashboard_get"
	"dispatch/internal/handlers/rest/rider_delivery_advance_post"
	"dispatch/internal/handlers/rest/rider_get"
	"dispatch/internal/handlers/rest/rider_offer_accept_post"
	"dispatch/internal/handlers/rest/rider_post"
	"dispatch/internal/handlers/rest/riders_get"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	metrics_system "dispatch/internal/pkg/metrics"
	"dispatch/internal/pkg/middlewares/graceful_shutdown"
	"dispatch/internal/pkg/middlewares/metrics"
	"dispatch/internal/pkg/middlewares/rate_limiter"
	"dispatch/internal/pkg/middlewares/request_id"
	"dispatch/internal/pkg/middlewares/timeout"
	"dispatch/internal/pkg/migrations"
	"dispatch/internal/pkg/postgres"
	redisclient "dispatch/internal/pkg/redis"
	"dispatch/internal/repository/memory"
	"dispatch/pkg/background"
	"dispatch/pkg/keylock"
	"dispatch/pkg/keylock/redis_adapter"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/token_bucket"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting dispatch-service application")

	loaded, err := dotenv.Load()
	if err != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", err))
		return
	}
	if !loaded {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second

		systemMetricsInterval = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	var checks []healthcheck_head.Check

	locker, lockerChecks, closeLocker, err := newLocker(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("locker: %w", err)
	}
	defer closeLocker()
	checks = append(checks, lockerChecks...)

	var businessApp *application.Application
	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		runLog.Warn("using in-memory storage, state is lost on restart")

		businessApp, err = application.InitializeMemoryApplication(ctx, log, memory.New(), locker, cfg)
		if err != nil {
			return fmt.Errorf("business logic: %w", err)
		}
	default:
		pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		checks = append(checks, pool.Ping)
		prometheus.MustRegister(postgres.NewPoolCollector(pool))

		if cfg.Storage.MigrationsAuto {
			if err := migrations.Up(ctx, log, pool); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
		}

		businessApp, err = application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, locker, cfg)
		if err != nil {
			return fmt.Errorf("business logic: %w", err)
		}
	}

	_, err = background.New(ctx, log, []background.Task{metrics_system.NewSystemCollector(systemMetricsInterval)})
	if err != nil {
		return fmt.Errorf("system metrics: %w", err)
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server, checks),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// gRPC сервер
	var grpcServer *grpc.Server
	var grpcHealth *health.Server
	var grpcServerErr chan error
	if cfg.GRPC.Port != "" {
		handler := dispatch.NewHandler(businessApp.ServiceAssignment, businessApp.ServiceDelivery, businessApp.ServiceRider)
		grpcServer, grpcHealth = dispatch.NewServer(log, handler)

		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPC.Port))
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}

		grpcServerErr = make(chan error, 1)
		go func() {
			defer close(grpcServerErr)
			runLog.Info("grpc server starting",
				logger.NewField("port", cfg.GRPC.Port),
			)
			if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				grpcServerErr <- err
			}
		}()
	}
	// gRPC сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-grpcServerErr: // nil канал без GRPC_PORT
		return fmt.Errorf("grpc server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	if grpcServer != nil {
		grpcHealth.Shutdown()
		stopGRPC(shutdownCtx, grpcServer)
		runLog.Info("grpc server stopped")
	}

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

// newLocker блокировки курьеров и заказов: в памяти процесса или в redis для нескольких реплик.
func newLocker(ctx context.Context, log logger.Logger, cfg *config.Config) (keylock.Locker, []healthcheck_head.Check, func(), error) {
	if cfg.Locks.Backend != config.LockBackendRedis {
		return keylock.WithMetrics(keylock.NewLocal()), nil, func() {}, nil
	}

	client, err := redisclient.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("redis: %w", err)
	}

	closeClient := func() {
		if err := client.Close(); err != nil {
			log.Error("failed to close redis client", logger.NewField("error", err))
		}
	}
	check := func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}

	locker := redis_adapter.New(client, log, cfg.Locks.TTL)
	return keylock.WithMetrics(locker), []healthcheck_head.Check{check}, closeClient, nil
}

// stopGRPC ждет GracefulStop до дедлайна ctx, затем обрывает соединения.
func stopGRPC(ctx context.Context, server *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		server.Stop()
	}
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg config.HTTPServer,
	checks []healthcheck_head.Check,
) http.Handler {
	router := mux.NewRouter()

	router.Use(request_id.Middleware())
	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.New(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, checks...)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	router.Handle("/order", order_post.New(log, app.ServiceOrder)).Methods("POST")
	router.Handle("/order/{id}", order_get.New(log, app.ServiceDelivery)).Methods("GET")
	router.Handle("/order/{id}/history", order_history_get.New(log, app.ServiceDelivery)).Methods("GET")
	router.Handle("/order/{id}/offer", order_offer_post.New(log, app.ServiceAssignment)).Methods("POST")
	router.Handle("/order/{id}/offer/expire", order_offer_expire_post.New(log, app.ServiceAssignment)).Methods("POST")
	router.Handle("/order/{id}/cancel", order_cancel_post.New(log, app.ServiceDelivery)).Methods("POST")

	router.Handle("/rider", rider_post.New(log, app.ServiceRider)).Methods("POST")
	router.Handle("/riders", riders_get.New(log, app.ServiceRider)).Methods("GET")
	router.Handle("/rider/{id}", rider_get.New(log, app.ServiceRider)).Methods("GET")
	router.Handle("/rider/{id}/availability", rider_availability_put.New(log, app.ServiceRider)).Methods("PUT")
	router.Handle("/rider/{id}/dashboard", rider_dashboard_get.New(log, app.ServiceAssignment)).Methods("GET")
	router.Handle("/rider/{id}/offer/{order_id}/accept", rider_offer_accept_post.New(log, app.ServiceAssignment)).Methods("POST")
	router.Handle("/rider/{id}/delivery/{order_id}/advance", rider_delivery_advance_post.New(log, app.ServiceDelivery)).Methods("POST")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

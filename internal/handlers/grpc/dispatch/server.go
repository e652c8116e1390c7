package dispatch

import (
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	keepaliveTime    = 5 * time.Minute
	keepaliveTimeout = 3 * time.Second
	keepaliveMinTime = 30 * time.Second
)

// NewServer gRPC сервер с сервисом диспетчеризации и стандартным health сервисом.
// health нужен вызывающему, чтобы перевести сервис в NOT_SERVING при остановке.
func NewServer(log handlerLogger, srv DispatchServer) (*grpc.Server, *health.Server) {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(UnaryInterceptor(log)),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    keepaliveTime,
			Timeout: keepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             keepaliveMinTime,
			PermitWithoutStream: false,
		}),
	)

	server.RegisterService(&ServiceDesc, srv)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return server, healthServer
}

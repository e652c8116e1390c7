package dispatch

import (
	"context"
	"errors"
	"strings"
	"time"

	"dispatch/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryInterceptor метрики и лог запроса, аналог HTTP middleware metrics.
func UnaryInterceptor(log handlerLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		duration := time.Since(start)
		code := status.Code(err)
		method := info.FullMethod[strings.LastIndex(info.FullMethod, "/")+1:]

		GRPCRequestDuration.WithLabelValues(method, code.String()).Observe(duration.Seconds())

		reqLog := log.With(
			logger.NewField("method", info.FullMethod),
			logger.NewField("grpc_code", code.String()),
			logger.NewField("duration", duration.String()),
		)

		var internal *errInternal
		switch {
		case errors.As(err, &internal):
			reqLog.Error("gRPC request failed", logger.NewField("error", internal.cause))
		case code == codes.Unavailable:
			reqLog.Warn("gRPC request")
		default:
			reqLog.Info("gRPC request")
		}

		return resp, err
	}
}

package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var GRPCRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "grpc_server_request_duration_seconds",
		Help:    "Duration of gRPC requests handled by the dispatch service",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"method", "grpc_code"},
)

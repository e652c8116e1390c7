package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dispatch_transitions_total",
		Help: "Total number of recorded order status transitions",
	},
	[]string{"from", "to"},
)

func ObserveTransition(from, to string) {
	if from == "" {
		from = "none"
	}
	TransitionsTotal.WithLabelValues(from, to).Inc()
}

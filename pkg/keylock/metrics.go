package keylock

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var LockWaitDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "dispatch_lock_wait_seconds",
		Help:    "Time spent waiting for a per-key lock",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"kind", "result"},
)

type observed struct {
	next Locker
}

// WithMetrics пишет время ожидания блокировки по виду ключа ("order", "rider").
func WithMetrics(next Locker) Locker {
	return &observed{next: next}
}

func (o *observed) Lock(ctx context.Context, key string) (Unlock, error) {
	start := time.Now()
	unlock, err := o.next.Lock(ctx, key)

	result := "acquired"
	if err != nil {
		result = "failed"
	}
	kind, _, _ := strings.Cut(key, ":")
	LockWaitDuration.WithLabelValues(kind, result).Observe(time.Since(start).Seconds())

	return unlock, err
}

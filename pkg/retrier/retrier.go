package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type (
	ShouldRetryFunc func(error) bool
	NotifyFunc      func(err error, wait time.Duration)
)

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// 0 - без ограничения, ретраим пока жив контекст
	MaxElapsedTime time.Duration
	Randomization  float64
	Multiplier     float64

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc

	// вызывается перед каждой повторной попыткой, может быть nil
	OnRetry NotifyFunc
}

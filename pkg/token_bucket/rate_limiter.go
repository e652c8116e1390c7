package token_bucket

import (
	"sync"
	"time"
)

// TokenBucket держит дробный остаток токенов, поэтому медленное пополнение
// не теряется между вызовами Allow.
type TokenBucket struct {
	mu         sync.Mutex
	burst      float64
	tokens     float64
	ratePerSec float64
	lastRefill time.Time
	now        func() time.Time
}

type Option func(*TokenBucket)

// WithClock подменяет источник времени, нужен тестам.
func WithClock(now func() time.Time) Option {
	return func(t *TokenBucket) {
		t.now = now
	}
}

// New bucket начинается заполненным до burst.
func New(burst int, ratePerSec float64, opts ...Option) *TokenBucket {
	t := &TokenBucket{
		burst:      float64(max(burst, 0)),
		ratePerSec: max(ratePerSec, 0),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.tokens = t.burst
	t.lastRefill = t.now()
	return t
}

func (t *TokenBucket) Allow() bool {
	return t.AllowN(1)
}

// AllowN списывает n токенов целиком либо ничего.
func (t *TokenBucket) AllowN(n int) bool {
	if n <= 0 {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()

	if t.tokens < float64(n) {
		return false
	}
	t.tokens -= float64(n)
	return true
}

// Tokens сколько целых токенов доступно прямо сейчас.
func (t *TokenBucket) Tokens() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return int(t.tokens)
}

func (t *TokenBucket) refill() {
	now := t.now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}
	t.lastRefill = now
	t.tokens = min(t.burst, t.tokens+elapsed*t.ratePerSec)
}

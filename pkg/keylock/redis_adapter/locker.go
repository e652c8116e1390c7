package redis_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/pkg/keylock"
	"dispatch/pkg/logger"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "dispatch:lock:"

	initialInterval = 10 * time.Millisecond
	maxInterval     = 200 * time.Millisecond
	randomization   = 0.3
	multiplier      = 1.5
)

var errLockBusy = errors.New("lock busy")

// удаляем только свой токен, чужую блокировку после истечения TTL не трогаем
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
}

// Locker распределенная блокировка на SET NX PX. TTL страхует от упавшей реплики,
// ожидание ограничено контекстом вызова.
type Locker struct {
	client  redis.UniversalClient
	log     handlerLogger
	ttl     time.Duration
	retrier *backoff_adapter.Retrier
}

func New(client redis.UniversalClient, log handlerLogger, ttl time.Duration) *Locker {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  0, // ограничиваемся дедлайном контекста
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry: func(err error) bool {
			return errors.Is(err, errLockBusy)
		},
	}

	return &Locker{
		client:  client,
		log:     log,
		ttl:     ttl,
		retrier: backoff_adapter.New(retryConfig),
	}
}

func (l *Locker) Lock(ctx context.Context, key string) (keylock.Unlock, error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	err := l.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return err
		}
		if !ok {
			return errLockBusy
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", keylock.ErrNotAcquired, key, ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %w", keylock.ErrNotAcquired, key, err)
	}

	return func() {
		// контекст вызова к этому моменту может быть отменен
		unlockCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		err := unlockScript.Run(unlockCtx, l.client, []string{redisKey}, token).Err()
		if err != nil {
			l.log.Warn("release redis lock",
				logger.NewField("key", key),
				logger.NewField("error", err),
			)
		}
	}, nil
}

package keylock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/semaphore"
)

var ErrNotAcquired = errors.New("lock not acquired")

type Unlock func()

// Locker взаимное исключение по ключу. Ожидание ограничено контекстом.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

func Key(kind string, id int64) string {
	return kind + ":" + strconv.FormatInt(id, 10)
}

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// Local блокировки внутри процесса, по семафору на ключ.
// Запись удаляется, когда ключ никто не держит и не ждет.
type Local struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewLocal() *Local {
	return &Local{
		entries: make(map[string]*entry),
	}
}

func (l *Local) Lock(ctx context.Context, key string) (Unlock, error) {
	e := l.acquireEntry(key)

	err := e.sem.Acquire(ctx, 1)
	if err != nil {
		l.releaseEntry(key, e)
		return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			l.releaseEntry(key, e)
		})
	}, nil
}

func (l *Local) acquireEntry(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Local) releaseEntry(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

package lock

import (
	"context"
	"sync"
)

// LocalRunLocker serializes named runs within a single process. Suitable for
// single-instance deployments and tests; multi-instance deployments need the
// Redis locker.
type LocalRunLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocalRunLocker() *LocalRunLocker {
	return &LocalRunLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *LocalRunLocker) Acquire(ctx context.Context, name string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

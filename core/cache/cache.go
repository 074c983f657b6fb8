package cache

import (
	"context"
	"sync"
)

// Locker provides mutual exclusion keyed by an arbitrary string. It guards
// the read-refresh-persist sequence in the token service so that two
// concurrent requests for the same integration cannot both refresh and
// overwrite each other's credentials.
type Locker interface {
	// Lock blocks until the key is held or ctx is done. The returned
	// function releases the key.
	Lock(ctx context.Context, key string) (func(), error)
}

// memoryLocker serializes within a single process. Used in tests and when
// Redis is not configured.
type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMemoryLocker() Locker {
	return &memoryLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *memoryLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

package services

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLocker implements Locker within a single process
type MemoryLocker struct {
	BaseProvider
	mu    sync.Mutex
	locks map[string]*memorySlot
}

// memorySlot lives while someone holds or waits for its key
type memorySlot struct {
	ch   chan struct{}
	refs int
}

// NewMemoryLocker creates an in-process locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		BaseProvider: BaseProvider{serviceType: "memory"},
		locks:        make(map[string]*memorySlot),
	}
}

func (l *MemoryLocker) acquireSlot(key string) *memorySlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.locks[key]
	if !ok {
		s = &memorySlot{ch: make(chan struct{}, 1)}
		l.locks[key] = s
	}
	s.refs++
	return s
}

func (l *MemoryLocker) releaseSlot(key string, s *memorySlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.locks, key)
	}
}

// Lock blocks until the key is free or ctx is done
func (l *MemoryLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	s := l.acquireSlot(key)
	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(key, s)
		return nil, fmt.Errorf("waiting for lock %s: %w", key, ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-s.ch
			l.releaseSlot(key, s)
		})
		return nil
	}, nil
}

// HealthCheck always succeeds
func (l *MemoryLocker) HealthCheck(context.Context) error { return nil }

// Stats reports how many games are currently locked
func (l *MemoryLocker) Stats(context.Context) (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	held := 0
	for _, s := range l.locks {
		held += len(s.ch)
	}
	return map[string]any{"held_locks": held, "tracked_keys": len(l.locks)}, nil
}

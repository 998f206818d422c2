package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LocalLocker is a keyed mutex for single-instance deployments without Redis.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{
		slots: make(map[string]*slot),
		wait:  wait,
	}
}

func (l *LocalLocker) Obtain(ctx context.Context, key string) (Lock, error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	select {
	case s.ch <- struct{}{}:
		return &localLock{locker: l, key: key, slot: s}, nil
	case <-ctx.Done():
		l.unref(key, s)
		return nil, fmt.Errorf("%s: %w", key, ErrNotObtained)
	}
}

func (l *LocalLocker) unref(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

type localLock struct {
	locker *LocalLocker
	key    string
	slot   *slot
	once   sync.Once
}

func (l *localLock) Release(_ context.Context) error {
	l.once.Do(func() {
		<-l.slot.ch
		l.locker.unref(l.key, l.slot)
	})
	return nil
}

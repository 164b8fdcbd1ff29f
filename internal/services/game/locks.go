package game

import (
	"context"
	"sync"
)

// matchLocks serializes work per match. Waiting respects the context so a
// stuck match cannot hold a caller forever.
type matchLocks struct {
	mu    sync.Mutex
	locks map[string]*matchLock
}

type matchLock struct {
	sem  chan struct{}
	refs int
}

func newMatchLocks() *matchLocks {
	return &matchLocks{
		locks: make(map[string]*matchLock),
	}
}

// acquire blocks until the match is free or ctx is done
func (l *matchLocks) acquire(ctx context.Context, matchID string) (func(), error) {
	l.mu.Lock()
	lock, ok := l.locks[matchID]
	if !ok {
		lock = &matchLock{sem: make(chan struct{}, 1)}
		l.locks[matchID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.sem <- struct{}{}:
	case <-ctx.Done():
		l.drop(matchID, lock)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lock.sem
			l.drop(matchID, lock)
		})
	}, nil
}

func (l *matchLocks) drop(matchID string, lock *matchLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, matchID)
	}
}

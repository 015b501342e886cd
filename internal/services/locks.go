package services

import "sync"

// UserLocks serializes read-modify-write cycles on a single user's record.
// Every service that persists through the full-row user update must hold
// the same per-user mutex, otherwise an interleaved writer pushes a stale
// row back and erases a committed quota spend. One instance is shared
// across the quota, session and user services at wiring time. Cross-user
// requests share nothing and proceed in parallel.
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewUserLocks creates the shared per-user lock registry.
func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *UserLocks) get(userID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	return m
}

// Lock acquires the per-user mutex and returns its unlock function.
func (l *UserLocks) Lock(userID int64) func() {
	m := l.get(userID)
	m.Lock()
	return m.Unlock
}

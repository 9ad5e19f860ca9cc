package service

import "sync"

// ============================================================
// Project Locks
// ============================================================

// ProjectLocks serializes work per project ID. Entries are dropped once no
// goroutine holds or waits for them.
type ProjectLocks struct {
	mu    sync.Mutex
	locks map[string]*projectLock
}

type projectLock struct {
	mu   sync.Mutex
	refs int
}

func NewProjectLocks() *ProjectLocks {
	return &ProjectLocks{locks: make(map[string]*projectLock)}
}

// Lock blocks until id is free and returns the matching unlock.
func (l *ProjectLocks) Lock(id string) (unlock func()) {
	l.mu.Lock()
	pl, ok := l.locks[id]
	if !ok {
		pl = &projectLock{}
		l.locks[id] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()

		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *ProjectLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

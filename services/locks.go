package services

import "sync"

// bracketLocks serializes mutations per bracket. Progression rewrites the
// whole snapshot on every submit/undo, so two concurrent writers on the same
// bracket would clobber each other's persisted state; writers on different
// brackets never contend.
type bracketLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newBracketLocks() *bracketLocks {
	return &bracketLocks{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks the mutex for the given bracket, creating it on first use,
// and returns the matching unlock func.
func (l *bracketLocks) Acquire(bracketID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[bracketID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[bracketID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

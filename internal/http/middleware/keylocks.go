package middleware

import "sync"

// KeyLocks is a set of mutexes addressed by string key. Entries are
// reference counted and dropped when the last holder unlocks.
type KeyLocks struct {
	mu sync.Mutex
	m  map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyLocks returns an empty KeyLocks.
func NewKeyLocks() *KeyLocks {
	return &KeyLocks{m: make(map[string]*keyLock)}
}

// Lock blocks until key is free and returns the matching unlock.
func (l *KeyLocks) Lock(key string) func() {
	l.mu.Lock()
	e, ok := l.m[key]
	if !ok {
		e = &keyLock{}
		l.m[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, key)
		}
		l.mu.Unlock()
	}
}

// Len reports how many keys are held or awaited.
func (l *KeyLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

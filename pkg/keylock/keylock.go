// Package keylock provides mutual exclusion by string key. The payment flow
// holds a key for the whole balance-check/transfer window so two concurrent
// attempts against the same deposit slot cannot both observe a sufficient
// balance before either has moved funds.
package keylock

import "sync"

type lockEntry struct {
	mtx  sync.Mutex
	refs int
}

// Locker hands out one mutex per key. Idle keys are dropped as soon as the
// last holder releases them.
type Locker struct {
	mtx     sync.Mutex
	entries map[string]*lockEntry
}

func New() *Locker {
	return &Locker{entries: make(map[string]*lockEntry)}
}

// Lock blocks until the given key is exclusively held by the caller.
func (l *Locker) Lock(key string) {
	l.mtx.Lock()
	entry, ok := l.entries[key]
	if !ok {
		entry = &lockEntry{}
		l.entries[key] = entry
	}
	entry.refs++
	l.mtx.Unlock()

	entry.mtx.Lock()
}

// Unlock releases the given key. Calling Unlock for a key that is not held
// panics, like sync.Mutex does.
func (l *Locker) Unlock(key string) {
	l.mtx.Lock()
	entry, ok := l.entries[key]
	if !ok {
		l.mtx.Unlock()
		panic("keylock: unlock of unlocked key " + key)
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
	l.mtx.Unlock()

	entry.mtx.Unlock()
}

// Package keylock provides per-key mutual exclusion. Every command that
// mutates state scoped to one station acquires the station's lock so that
// operations on the same station serialize while unrelated stations proceed
// in parallel.
package keylock

import (
	"sync"

	"github.com/google/uuid"
)

type KeyLock struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func New() *KeyLock {
	return &KeyLock{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Lock acquires the mutex for key, creating it on first use. Lock entries
// are never removed; the key space (stations) is small and fixed.
func (k *KeyLock) Lock(key uuid.UUID) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
}

func (k *KeyLock) Unlock(key uuid.UUID) {
	k.mu.Lock()
	m, ok := k.locks[key]
	k.mu.Unlock()
	if !ok {
		panic("keylock: unlock of unknown key")
	}
	m.Unlock()
}

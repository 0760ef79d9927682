// Package keylock provides lazily created per-key mutexes. The booking and
// review services use it for per-listing exclusive access: every
// check-then-mutate sequence against one listing runs under that listing's
// lock, while operations on different listings proceed in parallel.
package keylock

import "sync"

type KeyLock struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New() *KeyLock {
	return &KeyLock{locks: make(map[int64]*sync.Mutex)}
}

func (k *KeyLock) get(key int64) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Do runs fn while holding the mutex for key.
func (k *KeyLock) Do(key int64, fn func() error) error {
	m := k.get(key)
	m.Lock()
	defer m.Unlock()
	return fn()
}

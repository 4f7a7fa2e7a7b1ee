package store

import "sync"

// keyLocks serializes mutations per business key so that two concurrent
// upserts of the same record cannot interleave their read-modify-write
// cycles. Different keys proceed in parallel.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for a kind/key pair and returns its unlock func.
func (k *keyLocks) lock(kind, key string) func() {
	k.mu.Lock()
	m, ok := k.locks[kind+"/"+key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[kind+"/"+key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

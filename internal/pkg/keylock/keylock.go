// Package keylock provides per-key mutual exclusion.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// KeyedMutex serializes callers that share a key while callers with
// different keys proceed concurrently. Entries are dropped once unused.
type KeyedMutex[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*entry
}

func New[K comparable]() *KeyedMutex[K] {
	return &KeyedMutex[K]{entries: make(map[K]*entry)}
}

// Lock blocks until the key is free or ctx is done. The returned func
// releases the key and must be called exactly once.
func (m *KeyedMutex[K]) Lock(ctx context.Context, key K) (func(), error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return func() { m.release(key, e) }, nil
	case <-ctx.Done():
		m.mu.Lock()
		m.drop(key, e)
		m.mu.Unlock()
		return nil, ctx.Err()
	}
}

func (m *KeyedMutex[K]) release(key K, e *entry) {
	<-e.ch
	m.mu.Lock()
	m.drop(key, e)
	m.mu.Unlock()
}

func (m *KeyedMutex[K]) drop(key K, e *entry) {
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
}

// Len reports the number of keys currently held or awaited.
func (m *KeyedMutex[K]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

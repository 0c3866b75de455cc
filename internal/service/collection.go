package service

import (
	"sync"
	"sync/atomic"
)

// collection holds the last applied server snapshot. Every fetch takes a
// sequence number before it is issued; a response is applied only when its
// number is newer than the last applied one and the owner is still open.
type collection[T any] struct {
	mu      sync.RWMutex
	items   []T
	loaded  bool
	lastErr error
	closed  bool
	applied uint64
	issued  atomic.Uint64
}

func (c *collection[T]) begin() uint64 {
	return c.issued.Add(1)
}

// apply replaces the items wholesale and reports whether it did
func (c *collection[T]) apply(seq uint64, items []T, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq <= c.applied {
		return false
	}
	if items == nil {
		items = []T{}
	}
	c.applied = seq
	c.items = items
	c.loaded = true
	c.lastErr = err
	return true
}

func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) view(fn func(items []T)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.items)
}

func (c *collection[T]) isLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *collection[T]) err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *collection[T]) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// open starts a new mount: state is cleared and every fetch issued before
// this point is treated as stale.
func (c *collection[T]) open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = false
	c.items = nil
	c.loaded = false
	c.lastErr = nil
	c.applied = c.issued.Load()
}

func (c *collection[T]) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

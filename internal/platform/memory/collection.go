package memory

import (
	"sync"
)

// collection is an insertion-ordered list of records, newest first.
// Every mutation holds the write lock for its whole duration.
type collection[T any] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(T) string
}

func newCollection[T any](idOf func(T) string) *collection[T] {
	return &collection[T]{idOf: idOf}
}

// insert puts item at the head
func (c *collection[T]) insert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{item}, c.items...)
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// update applies fn to a copy of the stored item and keeps the copy only when fn succeeds
func (c *collection[T]) update(id string, fn func(*T) error) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	for i, item := range c.items {
		if c.idOf(item) != id {
			continue
		}
		updated := item
		if err := fn(&updated); err != nil {
			return zero, true, err
		}
		c.items[i] = updated
		return updated, true, nil
	}
	return zero, false, nil
}

func (c *collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if c.idOf(item) == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot returns a copy of the items in collection order
func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

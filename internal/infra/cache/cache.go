// Package cache provides an in-memory TTL map. The mock backend keeps its
// issued refresh tokens here.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemory is a thread-safe map whose entries expire after a TTL.
type InMemory[T any] struct {
	mu    sync.RWMutex
	items map[string]entry[T]
	ttl   time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a cache whose entries live for ttl. Call Close to stop the
// background sweeper.
func New[T any](ttl time.Duration) *InMemory[T] {
	c := &InMemory[T]{
		items: make(map[string]entry[T]),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get returns the value for key. Expired entries read as missing.
func (c *InMemory[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || e.expired(time.Now()) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value with the default TTL.
func (c *InMemory[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[T]{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Take returns and removes the value in one step, so a key can be
// consumed at most once.
func (c *InMemory[T]) Take(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	delete(c.items, key)
	if !ok || e.expired(time.Now()) {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *InMemory[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// DeleteWhere removes every entry for which match returns true and
// reports how many were removed.
func (c *InMemory[T]) DeleteWhere(match func(key string, value T) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k, e := range c.items {
		if match(k, e.value) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Len counts live entries.
func (c *InMemory[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	n := 0
	for _, e := range c.items {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// Close stops the sweeper. The cache stays usable; expired entries are
// then only hidden, not freed.
func (c *InMemory[T]) Close() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *InMemory[T]) sweep() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for k, e := range c.items {
				if e.expired(now) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		}
	}
}

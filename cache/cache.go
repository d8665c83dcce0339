// Copyright 2026 News Article Agent Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cache

import (
	"log/slog"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is an in-memory TTL cache. Expired entries are evicted lazily on
// access; there is no background sweeper.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the unexpired value stored under key.
// An expired entry is removed and reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given time to live.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
}

// Remove deletes a single entry.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) > 0 {
		c.logger.Debug("clearing cache", "entries", len(c.entries))
	}
	c.entries = make(map[string]entry)
}

// Size returns the number of unexpired entries.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	now := c.now()
	for _, e := range c.entries {
		if !now.After(e.expiresAt) {
			count++
		}
	}
	return count
}

// GetOrSet returns the cached value for key, or invokes compute on a miss
// and stores the result with the given TTL. A failed compute stores
// nothing and its error propagates. Concurrent callers missing on the
// same key may each invoke compute; last write wins.
func (c *Cache) GetOrSet(key string, ttl time.Duration, compute func() (any, error)) (any, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.Set(key, value, ttl)
	return value, nil
}

// GetOrSetTyped is a typed wrapper around GetOrSet. A cached value of the
// wrong type is treated as a miss and recomputed.
func GetOrSetTyped[T any](c *Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if value, ok := c.Get(key); ok {
		if typed, ok := value.(T); ok {
			return typed, nil
		}
		c.Remove(key)
	}

	typed, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, typed, ttl)
	return typed, nil
}

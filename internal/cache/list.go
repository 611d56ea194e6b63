// Package cache provides the process-wide list cache backing the domain
// services. Each service owns one List instance injected at construction, so
// tests can reset it and instances never share hidden globals.
package cache

import (
	"context"
	"sync"
)

// Loader reads the full collection from the backing store.
type Loader[T any] func(ctx context.Context) ([]T, error)

// List is a lazily initialized full-collection cache. It has no timer based
// invalidation; staleness is bounded by the next mutating call, which goes
// through Refresh.
type List[T any] struct {
	mu          sync.RWMutex
	items       []T
	initialized bool
}

// NewList returns an uninitialized cache.
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Get returns the cached slice, loading it first when the cache is
// uninitialized or forceRefresh is set. The returned slice is shared; callers
// must not mutate it.
func (l *List[T]) Get(ctx context.Context, forceRefresh bool, load Loader[T]) ([]T, error) {
	l.mu.RLock()
	if l.initialized && !forceRefresh {
		items := l.items
		l.mu.RUnlock()
		return items, nil
	}
	l.mu.RUnlock()

	return l.Refresh(ctx, load)
}

// Refresh unconditionally reloads the cache from the store and marks it
// initialized. A failed load leaves the previous contents in place.
func (l *List[T]) Refresh(ctx context.Context, load Loader[T]) ([]T, error) {
	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.items = items
	l.initialized = true
	l.mu.Unlock()

	return items, nil
}

// Find scans the cached slice with match and returns the first hit. The
// second result is false when the cache is uninitialized or nothing matches.
func (l *List[T]) Find(match func(T) bool) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var zero T
	if !l.initialized {
		return zero, false
	}
	for _, item := range l.items {
		if match(item) {
			return item, true
		}
	}
	return zero, false
}

// Reset drops the cached contents and the initialized flag. Used by tests.
func (l *List[T]) Reset() {
	l.mu.Lock()
	l.items = nil
	l.initialized = false
	l.mu.Unlock()
}

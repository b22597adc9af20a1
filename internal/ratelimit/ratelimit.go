// Package ratelimit bounds login attempts with a fixed-window counter kept
// in an explicitly injected store. The store is created per process and
// cleared on restart - no module-level globals shared across requests.
package ratelimit

import (
	"sync"
	"time"
)

// Store is the key-value backing for limiter counters.
type Store interface {
	Get(key string) (count int, windowStart time.Time, ok bool)
	Set(key string, count int, windowStart time.Time)
	Delete(key string)
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	count       int
	windowStart time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

func (m *MemoryStore) Get(key string) (int, time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	return e.count, e.windowStart, ok
}

func (m *MemoryStore) Set(key string, count int, windowStart time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{count: count, windowStart: windowStart}
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Limiter allows at most limit attempts per key within each window.
type Limiter struct {
	store   Store
	limit   int
	window  time.Duration
	nowTime func() time.Time
}

// LimiterOption defines a function type to modify the Limiter instance.
type LimiterOption func(*Limiter)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) LimiterOption {
	return func(l *Limiter) {
		l.nowTime = nowFunc
	}
}

func New(store Store, limit int, window time.Duration, options ...LimiterOption) *Limiter {
	l := &Limiter{
		store:   store,
		limit:   limit,
		window:  window,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Allow records an attempt for key and reports whether it is within the
// window's limit.
func (l *Limiter) Allow(key string) bool {
	now := l.nowTime()

	count, windowStart, ok := l.store.Get(key)
	if !ok || now.Sub(windowStart) >= l.window {
		l.store.Set(key, 1, now)
		return true
	}

	count++
	l.store.Set(key, count, windowStart)
	return count <= l.limit
}

// Reset clears the counter for key, e.g. after a successful login.
func (l *Limiter) Reset(key string) {
	l.store.Delete(key)
}

// Package ratelimit provides a keyed fixed-window request limiter.
// Each key gets an independent counter that resets at fixed window
// boundaries. Expired entries are swept opportunistically on each
// invocation; there is no background timer.
package ratelimit

import (
	"sync"
	"time"
)

// Result describes the counter state for a key.
type Result struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset,omitzero"` // zero when no window is active
}

type entry struct {
	count int
	reset time.Time
}

// Limiter is a fixed-window counter keyed by an arbitrary string
// (typically client IP + endpoint). Construct one per policy and
// inject it; fresh instances give tests full isolation.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	window  time.Duration
	max     int
	now     func() time.Time
}

// New creates a limiter allowing max requests per window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Allow records a request for key and reports whether it is within the
// limit. The first request of a window (or of a key) resets the counter
// to 1. When the limit is exceeded the returned Result carries the
// window reset time.
func (l *Limiter) Allow(key string) (Result, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	e, ok := l.entries[key]
	if !ok || now.After(e.reset) {
		e = &entry{count: 1, reset: now.Add(l.window)}
		l.entries[key] = e
		return l.result(e), true
	}

	if e.count < l.max {
		e.count++
		return l.result(e), true
	}

	return l.result(e), false
}

// Status returns the current counter state for key without consuming a
// request. A key with no active window reports the full limit remaining
// and a zero reset time.
func (l *Limiter) Status(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	e, ok := l.entries[key]
	if !ok || now.After(e.reset) {
		return Result{Limit: l.max, Remaining: l.max}
	}
	return l.result(e)
}

// Reset clears all counters.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.entries)
}

// sweep drops expired entries. Caller must hold the lock.
func (l *Limiter) sweep(now time.Time) {
	for key, e := range l.entries {
		if now.After(e.reset) {
			delete(l.entries, key)
		}
	}
}

func (l *Limiter) result(e *entry) Result {
	remaining := l.max - e.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{Limit: l.max, Remaining: remaining, Reset: e.reset}
}

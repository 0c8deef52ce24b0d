// Package ratelimit implements the per-event-kind cooldown used by the
// decision pipeline: a two-edge limiter with an independent timer per key.
package ratelimit

import (
	"sync"
	"time"
)

// Edge selects which side of the cooldown window fires.
type Edge string

const (
	// EdgeLeading is throttle semantics: the first occurrence in a window
	// fires immediately, later ones are suppressed until the window elapses.
	EdgeLeading Edge = "leading"
	// EdgeTrailing is debounce semantics: firing is deferred until a quiet
	// period with no further occurrences has elapsed.
	EdgeTrailing Edge = "trailing"
)

// Limiter decides per key whether a new occurrence may proceed now.
//
// One Limiter lives for the lifetime of a pipeline instantiation; its key map
// is the only shared mutable state in the core and is guarded internally, so
// concurrent host dispatch needs no external locking.
//
// Trailing-edge semantics are polled: Allow reports whether the previous
// quiet period resolved, it does not schedule anything. A trailing-edge
// firing is only observed when a later call of the same kind polls the timer;
// the core owns no scheduler that could fire it asynchronously.
type Limiter struct {
	window time.Duration
	edge   Edge

	// now is swappable for tests.
	now func() time.Time

	mu    sync.Mutex
	state map[string]time.Time
}

// New creates a limiter. A zero (or negative) window disables limiting:
// Allow always returns true and no timer state is kept.
func New(window time.Duration, edge Edge) *Limiter {
	return NewWithClock(window, edge, time.Now)
}

// NewWithClock creates a limiter with an injected clock, for callers that
// need deterministic windows (tests, replay).
func NewWithClock(window time.Duration, edge Edge, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		window: window,
		edge:   edge,
		now:    now,
		state:  map[string]time.Time{},
	}
}

// Allow reports whether an occurrence for key may proceed now. Keys never
// interact: exhausting one key's window does not affect another's.
func (l *Limiter) Allow(key string) bool {
	if l.window <= 0 {
		return true
	}

	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.edge {
	case EdgeTrailing:
		// Every call restarts the quiet period. The call itself is allowed
		// only when it lands after a previously started quiet period fully
		// elapsed.
		deadline, started := l.state[key]
		l.state[key] = now.Add(l.window)
		return started && !now.Before(deadline)
	default:
		// Leading: fire immediately, then suppress until the window elapses.
		last, fired := l.state[key]
		if fired && now.Before(last.Add(l.window)) {
			return false
		}
		l.state[key] = now
		return true
	}
}

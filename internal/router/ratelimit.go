package router

import (
	"sync"
	"time"
)

// windowLimiter enforces a per-provider requests-per-minute ceiling over a
// sliding 60 second window. Timestamps older than the window are pruned on
// every operation, so a provider that was saturated a minute ago is clean
// again without any background sweeper.
type windowLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	stamps  []time.Time
	nowFunc func() time.Time
}

func newWindowLimiter(limit int) *windowLimiter {
	return &windowLimiter{
		limit:   limit,
		window:  time.Minute,
		nowFunc: time.Now,
	}
}

func (l *windowLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.stamps = l.stamps[i:]
	}
}

// reserve atomically checks the ceiling and records the request. The check
// and the record happen under one lock so two concurrent callers cannot
// both squeeze through the last slot.
func (l *windowLimiter) reserve() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	l.prune(now)
	if l.limit > 0 && len(l.stamps) >= l.limit {
		return false
	}
	l.stamps = append(l.stamps, now)
	return true
}

// count reports how many requests fall inside the current window without
// consuming a slot.
func (l *windowLimiter) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(l.nowFunc())
	return len(l.stamps)
}

// available reports whether a reserve call would currently succeed.
func (l *windowLimiter) available() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune(l.nowFunc())
	return l.limit <= 0 || len(l.stamps) < l.limit
}

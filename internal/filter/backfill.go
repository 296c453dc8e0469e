package filter

import (
	"sync"
	"time"
)

// MinVisible is the visible-result threshold below which one more page is
// requested, provided more pages exist and nothing is in flight.
const MinVisible = 10

// Backfiller debounces the "need more data" signal so a burst of state
// updates in the same tick collapses into at most one page request.
type Backfiller struct {
	delay   time.Duration
	trigger func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewBackfiller calls trigger at most once per debounce window. A
// non-positive delay falls back to 50ms.
func NewBackfiller(delay time.Duration, trigger func()) *Backfiller {
	if delay <= 0 {
		delay = 50 * time.Millisecond
	}
	return &Backfiller{delay: delay, trigger: trigger}
}

// Observe inspects the latest evaluation outcome and schedules a debounced
// trigger when visible results are scarce. Redundant calls within the
// window reset the timer rather than stacking triggers.
func (b *Backfiller) Observe(visibleCount int, hasMore, inFlight bool) {
	if visibleCount >= MinVisible || !hasMore || inFlight {
		b.Cancel()
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.delay, b.trigger)
}

// Cancel drops any pending trigger.
func (b *Backfiller) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

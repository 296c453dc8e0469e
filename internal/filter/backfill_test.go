package filter

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestBackfiller_DebouncesBurst(t *testing.T) {
	var triggers int32
	b := NewBackfiller(20*time.Millisecond, func() { atomic.AddInt32(&triggers, 1) })

	// Several state updates in the same tick collapse into one trigger.
	for i := 0; i < 5; i++ {
		b.Observe(3, true, false)
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&triggers); got != 1 {
		t.Fatalf("triggers = %d, want 1", got)
	}
}

func TestBackfiller_NoTriggerWhenSatisfied(t *testing.T) {
	var triggers int32
	b := NewBackfiller(10*time.Millisecond, func() { atomic.AddInt32(&triggers, 1) })

	b.Observe(MinVisible, true, false) // at threshold, not below
	b.Observe(3, false, false)         // no more pages
	b.Observe(3, true, true)           // load already in flight

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&triggers); got != 0 {
		t.Fatalf("triggers = %d, want 0", got)
	}
}

func TestBackfiller_SatisfiedObservationCancelsPending(t *testing.T) {
	var triggers int32
	b := NewBackfiller(30*time.Millisecond, func() { atomic.AddInt32(&triggers, 1) })

	b.Observe(3, true, false)
	b.Observe(MinVisible+5, true, false) // enough results arrived before the window closed

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&triggers); got != 0 {
		t.Fatalf("triggers = %d, want 0", got)
	}
}

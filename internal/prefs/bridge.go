// Package prefs persists the active filter spec per view and owner. Writes
// are debounced and run on the background executor; reads at startup race a
// bounded timer so slow storage never blocks first render.
package prefs

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/platefeed/platefeed-sync/internal/kvstore"
	"github.com/platefeed/platefeed-sync/internal/shardqueue"
	"github.com/platefeed/platefeed-sync/internal/types"
)

// DefaultRestoreTimeout bounds how long Restore waits on storage before
// proceeding with defaults.
const DefaultRestoreTimeout = 200 * time.Millisecond

// Bridge debounces filter persistence over a kvstore.Store.
type Bridge struct {
	store          kvstore.Store
	exec           *shardqueue.Executor
	debounce       time.Duration
	restoreTimeout time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewBridge wires the bridge. A nil exec makes writes synchronous, which
// only tests use. Non-positive durations fall back to defaults.
func NewBridge(store kvstore.Store, exec *shardqueue.Executor, debounce, restoreTimeout time.Duration) *Bridge {
	if debounce <= 0 {
		debounce = 400 * time.Millisecond
	}
	if restoreTimeout <= 0 {
		restoreTimeout = DefaultRestoreTimeout
	}
	return &Bridge{
		store:          store,
		exec:           exec,
		debounce:       debounce,
		restoreTimeout: restoreTimeout,
		timers:         make(map[string]*time.Timer),
	}
}

func storageKey(view, ownerID string) string {
	return "filters/" + view + "/" + ownerID
}

// Save schedules a debounced write of spec for (view, owner). Rapid
// successive saves collapse into the last one. Storage failures are logged
// and swallowed: persistence is a background concern and must never
// interrupt the primary data flow.
func (b *Bridge) Save(view, ownerID string, spec types.FilterSpec) {
	key := storageKey(view, ownerID)

	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.timers[key]; ok {
		t.Stop()
	}
	b.timers[key] = time.AfterFunc(b.debounce, func() {
		b.write(key, spec)
	})
}

func (b *Bridge) write(key string, spec types.FilterSpec) {
	payload, err := json.Marshal(spec)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("filter persistence: marshal failed")
		return
	}
	job := shardqueue.JobFunc(func(ctx context.Context) error {
		return b.store.Set(ctx, key, string(payload))
	})
	if b.exec == nil {
		if err := job.Run(context.Background()); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("filter persistence: write failed")
		}
		return
	}
	if err := b.exec.Submit(context.Background(), key, job); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("filter persistence: enqueue failed")
	}
}

// Restore reads the persisted spec for (view, owner), waiting at most the
// restore timeout. On a miss, a storage error, a timeout, or malformed
// JSON it returns the zero spec: stale or broken persisted state is
// silently discarded, never surfaced.
func (b *Bridge) Restore(ctx context.Context, view, ownerID string) types.FilterSpec {
	ctx, cancel := context.WithTimeout(ctx, b.restoreTimeout)
	defer cancel()

	raw, ok, err := b.store.Get(ctx, storageKey(view, ownerID))
	if err != nil || !ok {
		if err != nil {
			log.Debug().Err(err).Str("view", view).Msg("filter restore: storage read failed, using defaults")
		}
		return types.FilterSpec{}
	}

	var spec types.FilterSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		log.Debug().Err(err).Str("view", view).Msg("filter restore: discarding malformed state")
		return types.FilterSpec{}
	}
	// Persisted bounds may predate validation; a spec that no longer
	// validates is treated the same as a malformed one.
	if err := spec.Validate(); err != nil {
		return types.FilterSpec{}
	}
	return spec
}

// Clear removes the persisted spec for (view, owner).
func (b *Bridge) Clear(ctx context.Context, view, ownerID string) {
	if err := b.store.Remove(ctx, storageKey(view, ownerID)); err != nil {
		log.Debug().Err(err).Str("view", view).Msg("filter persistence: remove failed")
	}
}

// Flush stops pending debounce timers, writing nothing. Used on Close.
func (b *Bridge) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k, t := range b.timers {
		t.Stop()
		delete(b.timers, k)
	}
}

// Package syncer is the fetch orchestrator: it decides cache versus remote
// per request, merges paginated loads, retries transient failures, applies
// optimistic mutations, and re-evaluates the active filter against the
// growing record set.
package syncer

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/platefeed/platefeed-sync/internal/cache"
	"github.com/platefeed/platefeed-sync/internal/filter"
	"github.com/platefeed/platefeed-sync/internal/pagination"
	"github.com/platefeed/platefeed-sync/internal/remote"
	"github.com/platefeed/platefeed-sync/internal/shardqueue"
	"github.com/platefeed/platefeed-sync/internal/types"
)

// Mode selects the fetch behavior for Load.
type Mode int

const (
	// ModeInitial prefers the local cache when no categorical filter is
	// active; a non-empty hit is authoritative for this render cycle.
	ModeInitial Mode = iota
	// ModeRefresh resets pagination, clears error state, and always
	// queries the remote source.
	ModeRefresh
	// ModeLoadMore fetches the next page; a no-op while one is in flight.
	ModeLoadMore
)

// Syncer orchestrates fetches, mutations, and filter evaluation for a set
// of collection keys belonging to one view.
type Syncer struct {
	source remote.Source
	cache  *cache.Cache
	exec   *shardqueue.Executor // nil disables background side effects
	cfg    Config
	retry  retryPolicy

	cacheDisabled bool

	mu      sync.Mutex
	states  map[string]*keyState
	spec    types.FilterSpec
	toggles map[string]bool // record ids with a favorite toggle in flight
}

// New wires a Syncer. exec may be nil; cache side effects then run inline.
func New(source remote.Source, c *cache.Cache, exec *shardqueue.Executor, cfg Config) *Syncer {
	cfg.applyDefaults()
	if c == nil {
		c = cache.New()
	}
	return &Syncer{
		source:  source,
		cache:   c,
		exec:    exec,
		cfg:     cfg,
		retry:   retryPolicy{maxAttempts: cfg.MaxAttempts, base: cfg.BaseBackoff},
		states:  make(map[string]*keyState),
		toggles: make(map[string]bool),
	}
}

// DisableCache turns off the read path of the local cache. Write-through
// stops as well.
func (s *Syncer) DisableCache() { s.cacheDisabled = true }

// Spec returns the active filter spec.
func (s *Syncer) Spec() types.FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// SetSpec installs a restored filter spec without refetching. Used at
// startup, before the first load.
func (s *Syncer) SetSpec(spec types.FilterSpec) {
	s.mu.Lock()
	s.spec = spec
	s.mu.Unlock()
}

// state returns (creating on demand) the state object for key. Callers
// hold s.mu.
func (s *Syncer) state(key types.CollectionKey) *keyState {
	id := key.String()
	st, ok := s.states[id]
	if !ok {
		st = &keyState{key: key, cursor: pagination.NewCursor()}
		st.backfill = filter.NewBackfiller(s.cfg.BackfillDebounce, func() {
			backfillsTotal.Inc()
			if _, err := s.Load(context.Background(), key, ModeLoadMore); err != nil {
				log.Debug().Err(err).Str("key", id).Msg("backfill fetch failed")
			}
		})
		s.states[id] = st
	}
	return st
}

// Drop discards all state for key. Called when the owning view unmounts or
// the user changes.
func (s *Syncer) Drop(key types.CollectionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[key.String()]; ok {
		st.backfill.Cancel()
		delete(s.states, key.String())
	}
}

// Reset discards every key state and the active spec.
func (s *Syncer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, st := range s.states {
		st.backfill.Cancel()
		delete(s.states, id)
	}
	s.spec = types.FilterSpec{}
}

// Load fetches the collection for key according to mode and returns the
// resulting view state. At most one initial/refresh fetch is in flight per
// key; a superseded response is dropped in favor of the newest request.
func (s *Syncer) Load(ctx context.Context, key types.CollectionKey, mode Mode) (*types.ViewState, error) {
	if err := types.ValidateKey(key); err != nil {
		return nil, err
	}

	s.mu.Lock()
	st := s.state(key)
	spec := s.spec

	switch mode {
	case ModeInitial:
		if st.fetching {
			vs := st.snapshot(spec)
			s.mu.Unlock()
			return vs, nil
		}
		if !spec.HasCategorical() && !s.cacheDisabled {
			if hit, ok := s.cache.Get(key); ok && len(hit) > 0 {
				cacheHitsTotal.Inc()
				st.records = hit
				st.status = types.StatusLoaded
				st.err = nil
				// The cached batch stands in for page 0; a short batch
				// means no further pages, exactly as with a remote fetch.
				st.cursor.Observe(0, len(hit), s.cfg.PageSize)
				vs := st.snapshot(spec)
				s.mu.Unlock()
				s.settle(st, vs)
				return vs, nil
			}
		}
		st.fetching = true
		st.status = types.StatusLoading
		gen := s.nextGen(st)
		s.mu.Unlock()
		return s.fetchPage(ctx, st, spec, 0, gen, false)

	case ModeRefresh:
		st.cursor.Reset()
		st.err = nil
		st.fetching = true
		st.status = types.StatusLoading
		gen := s.nextGen(st)
		s.mu.Unlock()
		return s.fetchPage(ctx, st, spec, 0, gen, false)

	case ModeLoadMore:
		page, ok := st.cursor.TryLoadMore()
		if !ok {
			vs := st.snapshot(spec)
			s.mu.Unlock()
			return vs, nil
		}
		st.status = types.StatusLoadingMore
		gen := s.nextGen(st)
		s.mu.Unlock()
		return s.fetchPage(ctx, st, spec, page, gen, true)

	default:
		s.mu.Unlock()
		return nil, errUnknownMode
	}
}

// nextGen issues a new request generation for st. Callers hold s.mu.
func (s *Syncer) nextGen(st *keyState) uint64 {
	st.lastGen++
	return st.lastGen
}

// fetchPage queries the remote source with the retry policy and publishes
// the result if its generation is still the newest for the key.
func (s *Syncer) fetchPage(ctx context.Context, st *keyState, spec types.FilterSpec, page int, gen uint64, loadMore bool) (*types.ViewState, error) {
	q := remote.RecordQuery{
		OwnerID:            st.key.OwnerID,
		Date:               st.key.Date,
		Cuisine:            spec.Cuisine,
		DietaryRestriction: spec.DietaryRestriction,
		MachineGenerated:   spec.MachineGenerated,
		Page:               page,
		PageSize:           s.cfg.PageSize,
	}

	var batch []types.Record
	err := s.retry.do(ctx, func(ctx context.Context) error {
		remoteFetchesTotal.Inc()
		var qerr error
		batch, qerr = s.source.Query(ctx, q)
		return qerr
	})

	s.mu.Lock()
	if !loadMore {
		st.fetching = false
	}

	if gen != st.lastGen {
		// A newer request for this key was issued while we were waiting;
		// its result wins. Release the load-more guard and report current.
		if loadMore {
			st.cursor.Fail()
		}
		vs := st.snapshot(s.spec)
		s.mu.Unlock()
		return vs, nil
	}

	if err != nil {
		st.status = types.StatusFailed
		st.err = err
		if loadMore {
			st.cursor.Fail()
		}
		vs := st.snapshot(s.spec)
		s.mu.Unlock()
		return vs, err
	}

	if loadMore {
		st.records = append(st.records, batch...)
	} else {
		st.records = append([]types.Record(nil), batch...)
	}
	st.cursor.Observe(page, len(batch), s.cfg.PageSize)
	st.status = types.StatusLoaded
	st.err = nil
	vs := st.snapshot(s.spec)
	s.mu.Unlock()

	if page == 0 && st.key.Date != "" && !spec.HasCategorical() && !s.cacheDisabled {
		s.populateCache(st.key, batch)
	}
	s.settle(st, vs)
	return vs, nil
}

// settle runs after every evaluation pass: it unlocks backfill-driven
// load-more and feeds the debouncer with the latest visible count.
func (s *Syncer) settle(st *keyState, vs *types.ViewState) {
	st.cursor.MarkEvaluated()
	_, hasMore, loadingMore := st.cursor.Snapshot()
	st.backfill.Observe(len(vs.Visible), hasMore, loadingMore)
}

// populateCache writes a fetched batch through to the local cache on the
// background executor. Failures are logged and swallowed: cache population
// must never interrupt the primary data flow.
func (s *Syncer) populateCache(key types.CollectionKey, records []types.Record) {
	job := shardqueue.JobFunc(func(context.Context) error {
		s.cache.Put(key, records)
		return nil
	})
	if s.exec == nil {
		_ = job.Run(context.Background())
		return
	}
	if err := s.exec.Submit(context.Background(), key.String(), job); err != nil {
		log.Warn().Err(err).Str("key", key.String()).Msg("cache population enqueue failed")
	}
}

// ApplyFilters validates and installs spec, refetching from the remote
// source when the server-evaluated portion changed (prior pages are then
// invalid), and re-evaluating locally otherwise. Validation failures
// surface synchronously and mutate nothing.
func (s *Syncer) ApplyFilters(ctx context.Context, key types.CollectionKey, spec types.FilterSpec) (*types.ViewState, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateKey(key); err != nil {
		return nil, err
	}

	s.mu.Lock()
	st := s.state(key)
	categoricalChanged := !s.spec.SameCategorical(spec)
	s.spec = spec

	if categoricalChanged {
		st.cursor.Reset()
		st.err = nil
		st.fetching = true
		st.status = types.StatusLoading
		gen := s.nextGen(st)
		s.mu.Unlock()
		return s.fetchPage(ctx, st, spec, 0, gen, false)
	}

	vs := st.snapshot(spec)
	s.mu.Unlock()
	s.settle(st, vs)
	return vs, nil
}

// ClearFilters drops every active filter.
func (s *Syncer) ClearFilters(ctx context.Context, key types.CollectionKey) (*types.ViewState, error) {
	return s.ApplyFilters(ctx, key, types.FilterSpec{})
}

// Visible evaluates the active spec against the current record set for key
// without touching the network.
func (s *Syncer) Visible(key types.CollectionKey) []types.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(key)
	return filter.Evaluate(st.records, s.spec)
}

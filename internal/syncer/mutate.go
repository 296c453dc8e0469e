package syncer

import (
	"context"
	"errors"

	"github.com/platefeed/platefeed-sync/internal/errs"
	"github.com/platefeed/platefeed-sync/internal/remote"
	"github.com/platefeed/platefeed-sync/internal/types"
)

var errUnknownMode = errors.New("unknown fetch mode")

// ToggleFavorite flips the favorite flag of a record optimistically: the
// local collection changes first, the remote update follows, and a remote
// failure restores the captured value. Derived records do not support this
// mutation server-side; toggling one is a no-op. Concurrent toggles on the
// same id are serialized by a per-id guard: the second request is dropped.
func (s *Syncer) ToggleFavorite(ctx context.Context, key types.CollectionKey, recordID string) (*types.ViewState, error) {
	if err := types.ValidateKey(key); err != nil {
		return nil, err
	}

	s.mu.Lock()
	st := s.state(key)
	idx := indexOf(st.records, recordID)
	if idx < 0 {
		vs := st.snapshot(s.spec)
		s.mu.Unlock()
		return vs, errs.ErrNotFound
	}
	if st.records[idx].Derived() {
		vs := st.snapshot(s.spec)
		s.mu.Unlock()
		return vs, nil
	}
	if s.toggles[recordID] {
		vs := st.snapshot(s.spec)
		s.mu.Unlock()
		return vs, nil
	}
	s.toggles[recordID] = true

	prev := st.records[idx].Favorite
	st.records[idx].Favorite = !prev
	vs := st.snapshot(s.spec)
	s.mu.Unlock()

	// The record set for this key changed; the cache entry is no longer
	// authoritative.
	s.cache.InvalidateKey(key)

	err := s.source.SetFavorite(ctx, key.OwnerID, recordID, !prev)

	s.mu.Lock()
	delete(s.toggles, recordID)
	if err != nil {
		if i := indexOf(st.records, recordID); i >= 0 {
			st.records[i].Favorite = prev
		}
		rollbacksTotal.Inc()
		st.err = err
		vs = st.snapshot(s.spec)
		s.mu.Unlock()
		return vs, err
	}
	vs = st.snapshot(s.spec)
	s.mu.Unlock()
	return vs, nil
}

// DeleteRecordsForDate removes every record in one date bucket, remote
// first, then locally, and invalidates the corresponding cache entry. The
// flat list drops matching records too.
func (s *Syncer) DeleteRecordsForDate(ctx context.Context, ownerID, date string) (*types.ViewState, error) {
	key := types.CollectionKey{OwnerID: ownerID, Date: date}
	if err := types.ValidateKey(key); err != nil {
		return nil, err
	}
	if date == "" {
		return nil, errors.New("date is required")
	}

	err := s.retry.do(ctx, func(ctx context.Context) error {
		return s.source.DeleteByDate(ctx, ownerID, date)
	})

	s.mu.Lock()
	st := s.state(key)
	if err != nil {
		st.status = types.StatusFailed
		st.err = err
		vs := st.snapshot(s.spec)
		s.mu.Unlock()
		return vs, err
	}

	st.records = nil
	st.status = types.StatusLoaded
	st.err = nil

	// The same records may be present in the flat list state.
	if flat, ok := s.states[ownerID]; ok {
		kept := flat.records[:0]
		for _, r := range flat.records {
			if r.Date != date {
				kept = append(kept, r)
			}
		}
		flat.records = kept
	}
	vs := st.snapshot(s.spec)
	s.mu.Unlock()

	s.cache.InvalidateKey(key)
	s.cache.InvalidateKey(types.CollectionKey{OwnerID: ownerID})
	return vs, nil
}

// AnalyzeImage submits an encoded image for nutrition analysis. On success
// the service has already persisted a derived record server-side, so the
// date bucket is invalidated and refetched rather than patched locally.
// The call is not retried automatically: a retry after an ambiguous
// failure could persist the derived record twice.
func (s *Syncer) AnalyzeImage(ctx context.Context, ownerID, date, encodedImage string) (*remote.AnalysisResult, *types.ViewState, error) {
	key := types.CollectionKey{OwnerID: ownerID, Date: date}
	if err := types.ValidateKey(key); err != nil {
		return nil, nil, err
	}

	res, err := s.source.Analyze(ctx, ownerID, date, encodedImage)
	if err != nil {
		return nil, nil, err
	}

	s.cache.InvalidateKey(key)
	vs, err := s.Load(ctx, key, ModeRefresh)
	return res, vs, err
}

func indexOf(records []types.Record, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

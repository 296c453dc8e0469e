package syncer

import (
	"github.com/platefeed/platefeed-sync/internal/filter"
	"github.com/platefeed/platefeed-sync/internal/pagination"
	"github.com/platefeed/platefeed-sync/internal/types"
)

// keyState is the explicit per-collection-key state object: one fetch FSM,
// one pagination cursor, one backfill debouncer. Keeping it in one place
// makes the "at most one in-flight fetch per key" invariant checkable
// instead of scattered across ambient flags.
type keyState struct {
	key     types.CollectionKey
	status  types.FetchStatus
	records []types.Record
	err     error

	cursor   *pagination.Cursor
	backfill *filter.Backfiller

	// lastGen is the newest request generation issued for this key. A
	// response is applied only when its generation is still the newest,
	// formalizing last-write-wins for superseded requests.
	lastGen uint64

	// fetching guards initial/refresh single-flight. Load-more has its own
	// guard inside the cursor.
	fetching bool
}

// snapshot renders the observable state. Callers hold s.mu.
func (st *keyState) snapshot(spec types.FilterSpec) *types.ViewState {
	page, hasMore, _ := st.cursor.Snapshot()
	records := make([]types.Record, len(st.records))
	copy(records, st.records)
	return &types.ViewState{
		Records: records,
		Visible: filter.Evaluate(records, spec),
		Page:    page,
		HasMore: hasMore,
		Status:  st.status,
		Err:     st.err,
	}
}

package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/platefeed/platefeed-sync/internal/types"
)

// WeekResult holds the per-date outcomes of a week-range load. Dates that
// failed appear in Errs; dates that succeeded appear in States. Partial
// failures never suppress successfully fetched dates.
type WeekResult struct {
	States map[string]*types.ViewState
	Errs   map[string]error
}

// LoadWeek fetches seven date buckets starting at startDate concurrently
// and joins the results. Each date goes through the normal initial-load
// path, so cache preference and the per-key in-flight guard apply.
func (s *Syncer) LoadWeek(ctx context.Context, ownerID, startDate string) (*WeekResult, error) {
	if err := types.ValidateOwnerID(ownerID); err != nil {
		return nil, err
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, err
	}

	res := &WeekResult{
		States: make(map[string]*types.ViewState, 7),
		Errs:   make(map[string]error),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		wg.Add(1)
		go func(date string) {
			defer wg.Done()
			vs, err := s.Load(ctx, types.CollectionKey{OwnerID: ownerID, Date: date}, ModeInitial)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Errs[date] = err
				return
			}
			res.States[date] = vs
		}(date)
	}
	wg.Wait()

	return res, nil
}

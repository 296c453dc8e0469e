// Package remote is the HTTP adapter for the authoritative record source.
// It performs no retries and keeps no state; retry policy and caching live
// in the syncer.
package remote

import (
	"context"

	"github.com/platefeed/platefeed-sync/internal/types"
)

// RecordQuery describes one paginated query against the remote source.
// Categorical filters are pushed to the server; numeric bounds and the text
// query are evaluated client-side only and never appear here.
type RecordQuery struct {
	OwnerID            string
	Date               string // optional ISO date bucket
	Cuisine            string
	DietaryRestriction string
	MachineGenerated   *bool
	Page               int
	PageSize           int
}

// AnalysisResult is the structured nutrition estimate for an image. The
// service persists a derived record server-side as a side effect; callers
// must refetch the date rather than insert the result locally.
type AnalysisResult struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	RecordID string  `json:"recordId"`
}

// Source is the remote record source consumed by the syncer.
type Source interface {
	// Query returns one page of records ordered favorite-first then id
	// descending. A short page (len < PageSize) marks the end of data.
	Query(ctx context.Context, q RecordQuery) ([]types.Record, error)

	// SetFavorite updates the favorite flag of one record.
	SetFavorite(ctx context.Context, ownerID, recordID string, favorite bool) error

	// DeleteByDate removes every record in one date bucket.
	DeleteByDate(ctx context.Context, ownerID, date string) error

	// Analyze submits an encoded image for nutrition analysis.
	Analyze(ctx context.Context, ownerID, date, encodedImage string) (*AnalysisResult, error)
}

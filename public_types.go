package mealsync

import (
	"github.com/platefeed/platefeed-sync/internal/remote"
	"github.com/platefeed/platefeed-sync/internal/syncer"
	"github.com/platefeed/platefeed-sync/internal/types"
)

// Public type aliases so SDK consumers can import only the mealsync package.
type (
	// Domain entities
	Record        = types.Record
	CollectionKey = types.CollectionKey
	ViewState     = types.ViewState
	FetchStatus   = types.FetchStatus

	// Filtering
	FilterSpec     = types.FilterSpec
	Bound          = types.Bound
	NutritionField = types.NutritionField

	// Operations
	Config         = syncer.Config
	WeekResult     = syncer.WeekResult
	AnalysisResult = remote.AnalysisResult
)

// Fetch lifecycle states.
const (
	StatusIdle        = types.StatusIdle
	StatusLoading     = types.StatusLoading
	StatusLoaded      = types.StatusLoaded
	StatusLoadingMore = types.StatusLoadingMore
	StatusFailed      = types.StatusFailed
)

// Filterable numeric fields.
const (
	FieldCalories = types.FieldCalories
	FieldProtein  = types.FieldProtein
	FieldCarbs    = types.FieldCarbs
	FieldFat      = types.FieldFat
)

// DerivedIDPrefix namespaces records produced by image analysis.
const DerivedIDPrefix = types.DerivedIDPrefix

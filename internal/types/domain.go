package types

import (
	"strings"
	"time"
)

// DerivedIDPrefix namespaces records produced by image analysis. Derived
// records are immutable except for deletion: they cannot be favorited or
// edited, only removed.
const DerivedIDPrefix = "derived_"

// Record is a single meal entry with its nutrition breakdown.
type Record struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"ownerId"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Calories           float64   `json:"calories"`
	Protein            float64   `json:"protein"`
	Carbs              float64   `json:"carbs"`
	Fat                float64   `json:"fat"`
	Favorite           bool      `json:"favorite"`
	MachineGenerated   bool      `json:"machineGenerated"`
	Cuisine            string    `json:"cuisine,omitempty"`
	DietaryRestriction string    `json:"dietaryRestriction,omitempty"`
	ImageRef           string    `json:"imageRef,omitempty"`
	Date               string    `json:"date,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Derived reports whether the record originated from image analysis.
// Such records do not support the favorite mutation server-side.
func (r Record) Derived() bool {
	return r.MachineGenerated || strings.HasPrefix(r.ID, DerivedIDPrefix)
}

// CollectionKey identifies one record collection: an owner plus an optional
// ISO date. An empty Date means the flat (unbucketed) list.
type CollectionKey struct {
	OwnerID string
	Date    string
}

// String renders the key in "owner" or "owner/date" form, suitable as a
// cache map key and as a shard key for the background executor.
func (k CollectionKey) String() string {
	if k.Date == "" {
		return k.OwnerID
	}
	return k.OwnerID + "/" + k.Date
}

// FetchStatus is the lifecycle state of one collection key.
type FetchStatus int

const (
	StatusIdle FetchStatus = iota
	StatusLoading
	StatusLoaded
	StatusLoadingMore
	StatusFailed
)

func (s FetchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusLoadingMore:
		return "loading-more"
	case StatusFailed:
		return "error"
	default:
		return "unknown"
	}
}

// ViewState is the observable state of a collection after an operation:
// the full record set, the filtered visible subset, and the cursor.
type ViewState struct {
	Records []Record
	Visible []Record
	Page    int
	HasMore bool
	Status  FetchStatus
	Err     error
}

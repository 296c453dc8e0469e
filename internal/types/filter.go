package types

import (
	"math"
	"strconv"

	"github.com/platefeed/platefeed-sync/internal/errs"
)

// NutritionField tags the numeric record fields a FilterSpec may bound.
// A fixed tagged set (rather than stringly-typed field lookup) keeps the
// accessor mapping total: every tag resolves, always.
type NutritionField string

const (
	FieldCalories NutritionField = "calories"
	FieldProtein  NutritionField = "protein"
	FieldCarbs    NutritionField = "carbs"
	FieldFat      NutritionField = "fat"
)

// NutritionFields lists every filterable field in stable order.
var NutritionFields = []NutritionField{FieldCalories, FieldProtein, FieldCarbs, FieldFat}

// Value returns the record's value for the tagged field.
func (f NutritionField) Value(r Record) float64 {
	switch f {
	case FieldCalories:
		return r.Calories
	case FieldProtein:
		return r.Protein
	case FieldCarbs:
		return r.Carbs
	case FieldFat:
		return r.Fat
	default:
		return 0
	}
}

// Bound is an open numeric interval expressed as user input. Empty strings
// mean "unset"; non-empty strings must parse to finite numbers.
type Bound struct {
	GreaterThan string `json:"greaterThan,omitempty"`
	LessThan    string `json:"lessThan,omitempty"`
}

// IsZero reports whether neither side of the bound is set.
func (b Bound) IsZero() bool { return b.GreaterThan == "" && b.LessThan == "" }

// FilterSpec is the active filter: numeric bounds per nutrition field,
// categorical equality constraints, and a free-text query. Categorical
// fields are the server-evaluated portion; bounds and query are evaluated
// client-side only.
type FilterSpec struct {
	Bounds             map[NutritionField]Bound `json:"bounds,omitempty"`
	Cuisine            string                   `json:"cuisine,omitempty"`
	DietaryRestriction string                   `json:"dietaryRestriction,omitempty"`
	MachineGenerated   *bool                    `json:"machineGenerated,omitempty"`
	Query              string                   `json:"query,omitempty"`
}

// HasCategorical reports whether any server-evaluated filter is active.
// When true the cache must be bypassed and pagination restarts at page 0.
func (s FilterSpec) HasCategorical() bool {
	return s.Cuisine != "" || s.DietaryRestriction != "" || s.MachineGenerated != nil
}

// IsZero reports whether the spec filters nothing at all.
func (s FilterSpec) IsZero() bool {
	if s.HasCategorical() || s.Query != "" {
		return false
	}
	for _, b := range s.Bounds {
		if !b.IsZero() {
			return false
		}
	}
	return true
}

// SameCategorical reports whether two specs agree on the server-evaluated
// portion. Pages fetched under one categorical combination are invalid
// under another.
func (s FilterSpec) SameCategorical(o FilterSpec) bool {
	if s.Cuisine != o.Cuisine || s.DietaryRestriction != o.DietaryRestriction {
		return false
	}
	if (s.MachineGenerated == nil) != (o.MachineGenerated == nil) {
		return false
	}
	return s.MachineGenerated == nil || *s.MachineGenerated == *o.MachineGenerated
}

// Validate rejects numeric bound input that is non-empty yet does not parse
// to a finite number. Validation happens before a spec is applied so a bad
// keystroke never mutates filter state.
func (s FilterSpec) Validate() error {
	for field, b := range s.Bounds {
		for _, raw := range []string{b.GreaterThan, b.LessThan} {
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
				return &errs.ValidationError{Field: string(field), Value: raw}
			}
		}
	}
	return nil
}

// ParseBound returns the numeric value of one side of a bound. ok is false
// when the input is empty or malformed; callers treat that side as unset
// (fail-open, matching Validate having already rejected bad applies).
func ParseBound(raw string) (v float64, ok bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Package filter evaluates the active filter spec against the in-memory
// record set. Evaluate is pure and order-preserving; the categorical checks
// here are semantically identical to the ones the server applies, so cached
// and remote-filtered results cannot diverge.
package filter

import (
	"strings"

	"github.com/platefeed/platefeed-sync/internal/types"
)

// Evaluate returns the subset of records passing spec, preserving input
// order. With a zero spec it is the identity on membership and ordering.
func Evaluate(records []types.Record, spec types.FilterSpec) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, spec) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether one record passes the spec.
func Matches(r types.Record, spec types.FilterSpec) bool {
	for _, field := range types.NutritionFields {
		b, ok := spec.Bounds[field]
		if !ok || b.IsZero() {
			continue
		}
		v := field.Value(r)
		// Strict inequality on both sides. A malformed or empty side is
		// treated as unset (fail-open).
		if g, ok := types.ParseBound(b.GreaterThan); ok && !(v > g) {
			return false
		}
		if l, ok := types.ParseBound(b.LessThan); ok && !(v < l) {
			return false
		}
	}

	if !matchesCategorical(r, spec) {
		return false
	}

	if q := strings.TrimSpace(spec.Query); q != "" {
		q = strings.ToLower(q)
		name := strings.ToLower(r.Name)
		desc := strings.ToLower(r.Description)
		if !strings.Contains(name, q) && !strings.Contains(desc, q) {
			return false
		}
	}
	return true
}

func matchesCategorical(r types.Record, spec types.FilterSpec) bool {
	if spec.Cuisine != "" && !strings.EqualFold(r.Cuisine, spec.Cuisine) {
		return false
	}
	if spec.DietaryRestriction != "" && !strings.EqualFold(r.DietaryRestriction, spec.DietaryRestriction) {
		return false
	}
	if spec.MachineGenerated != nil && r.MachineGenerated != *spec.MachineGenerated {
		return false
	}
	return true
}

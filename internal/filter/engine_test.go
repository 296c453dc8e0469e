package filter

import (
	"testing"

	"github.com/platefeed/platefeed-sync/internal/types"
)

func rec(id string, calories float64) types.Record {
	return types.Record{ID: id, Name: "meal " + id, Calories: calories}
}

func TestEvaluate_ZeroSpecIsIdentity(t *testing.T) {
	records := []types.Record{rec("a", 100), rec("b", 200), rec("c", 300)}
	got := Evaluate(records, types.FilterSpec{})
	if len(got) != len(records) {
		t.Fatalf("membership changed: got %d records, want %d", len(got), len(records))
	}
	for i := range got {
		if got[i].ID != records[i].ID {
			t.Fatalf("ordering changed at %d: got %s want %s", i, got[i].ID, records[i].ID)
		}
	}
}

func TestEvaluate_StrictBounds(t *testing.T) {
	spec := types.FilterSpec{Bounds: map[types.NutritionField]types.Bound{
		types.FieldCalories: {GreaterThan: "100", LessThan: "300"},
	}}

	cases := []struct {
		calories float64
		want     bool
	}{
		{99, false},
		{100, false}, // equal to greaterThan fails, strict inequality
		{101, true},
		{299, true},
		{300, false}, // equal to lessThan fails
		{301, false},
	}
	for _, tc := range cases {
		if got := Matches(rec("x", tc.calories), spec); got != tc.want {
			t.Errorf("calories=%v: matches=%v, want %v", tc.calories, got, tc.want)
		}
	}
}

func TestEvaluate_MalformedBoundFailsOpen(t *testing.T) {
	spec := types.FilterSpec{Bounds: map[types.NutritionField]types.Bound{
		types.FieldCalories: {GreaterThan: "not-a-number", LessThan: ""},
	}}
	if !Matches(rec("x", 1), spec) {
		t.Fatal("malformed bound should be treated as unset")
	}
}

func TestEvaluate_OneSidedBound(t *testing.T) {
	spec := types.FilterSpec{Bounds: map[types.NutritionField]types.Bound{
		types.FieldCalories: {GreaterThan: "500"},
	}}
	records := make([]types.Record, 0, 100)
	for i := 0; i < 100; i++ {
		records = append(records, rec("r", float64(i*10)))
	}
	got := Evaluate(records, spec)
	want := 0
	for _, r := range records {
		if r.Calories > 500 {
			want++
		}
	}
	if len(got) != want {
		t.Fatalf("visible = %d, want %d", len(got), want)
	}
}

func TestEvaluate_TextQuery(t *testing.T) {
	records := []types.Record{
		{ID: "1", Name: "Chicken Salad"},
		{ID: "2", Name: "Pasta", Description: "with chicken strips"},
		{ID: "3", Name: "Tofu Bowl"},
	}
	got := Evaluate(records, types.FilterSpec{Query: "CHICKEN"})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("query match wrong: %+v", got)
	}
}

func TestEvaluate_Categorical(t *testing.T) {
	tru := true
	records := []types.Record{
		{ID: "1", Cuisine: "italian", MachineGenerated: false},
		{ID: "2", Cuisine: "Italian", MachineGenerated: true},
		{ID: "3", Cuisine: "thai", MachineGenerated: true},
	}

	got := Evaluate(records, types.FilterSpec{Cuisine: "italian"})
	if len(got) != 2 {
		t.Fatalf("cuisine filter: got %d, want 2 (case-insensitive equality)", len(got))
	}

	got = Evaluate(records, types.FilterSpec{MachineGenerated: &tru})
	if len(got) != 2 || got[0].ID != "2" {
		t.Fatalf("machine-generated tri-state filter wrong: %+v", got)
	}
}

func TestEvaluate_CombinedBoundsAndQuery(t *testing.T) {
	records := []types.Record{
		{ID: "1", Name: "oats", Calories: 350, Protein: 12},
		{ID: "2", Name: "oat bar", Calories: 150, Protein: 4},
		{ID: "3", Name: "steak", Calories: 600, Protein: 45},
	}
	spec := types.FilterSpec{
		Bounds: map[types.NutritionField]types.Bound{
			types.FieldProtein: {GreaterThan: "5"},
		},
		Query: "oat",
	}
	got := Evaluate(records, spec)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("combined filter wrong: %+v", got)
	}
}

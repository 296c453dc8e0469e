package types

import (
	"errors"
	"testing"

	"github.com/platefeed/platefeed-sync/internal/errs"
)

func TestFilterSpec_Validate(t *testing.T) {
	good := FilterSpec{Bounds: map[NutritionField]Bound{
		FieldCalories: {GreaterThan: "500", LessThan: ""},
		FieldFat:      {LessThan: "30.5"},
	}}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}

	bad := FilterSpec{Bounds: map[NutritionField]Bound{
		FieldProtein: {GreaterThan: "lots"},
	}}
	err := bad.Validate()
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *errs.ValidationError, got %v", err)
	}
	if ve.Field != "protein" || ve.Value != "lots" {
		t.Fatalf("unexpected validation detail: %+v", ve)
	}

	inf := FilterSpec{Bounds: map[NutritionField]Bound{
		FieldCarbs: {LessThan: "+Inf"},
	}}
	if err := inf.Validate(); err == nil {
		t.Fatal("non-finite bound should be rejected")
	}
}

func TestFilterSpec_HasCategorical(t *testing.T) {
	if (FilterSpec{Query: "rice"}).HasCategorical() {
		t.Fatal("text query is not a categorical filter")
	}
	if !(FilterSpec{Cuisine: "thai"}).HasCategorical() {
		t.Fatal("cuisine is categorical")
	}
	f := false
	if !(FilterSpec{MachineGenerated: &f}).HasCategorical() {
		t.Fatal("explicit tri-state false is categorical")
	}
}

func TestFilterSpec_SameCategorical(t *testing.T) {
	tru := true
	a := FilterSpec{Cuisine: "thai", MachineGenerated: &tru}
	b := FilterSpec{Cuisine: "thai", MachineGenerated: &tru, Query: "noodle"}
	if !a.SameCategorical(b) {
		t.Fatal("query changes must not count as categorical changes")
	}
	c := FilterSpec{Cuisine: "thai"}
	if a.SameCategorical(c) {
		t.Fatal("dropping the tri-state is a categorical change")
	}
}

func TestParseBound(t *testing.T) {
	if _, ok := ParseBound(""); ok {
		t.Fatal("empty input is unset")
	}
	if _, ok := ParseBound("12x"); ok {
		t.Fatal("malformed input is unset")
	}
	if v, ok := ParseBound("500"); !ok || v != 500 {
		t.Fatalf("ParseBound(500) = (%v, %v)", v, ok)
	}
}

package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskboard/pkg/schema"
)

func TestDefault_CanonicalOrder(t *testing.T) {
	s := schema.Default()

	want := []string{
		"int_rate", "term", "dti", "fico_range_high", "acc_open_past_24mths",
		"mo_sin_old_rev_tl_op", "bc_open_to_buy", "mort_acc", "total_bc_limit",
		"avg_cur_bal", "open_rv_24m",
	}
	if diff := cmp.Diff(want, s.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_Bounds(t *testing.T) {
	s := schema.Default()

	cases := map[string][2]float64{
		"int_rate":             {0, 40},
		"term":                 {12, 60},
		"dti":                  {0, 50},
		"fico_range_high":      {300, 850},
		"acc_open_past_24mths": {0, 20},
		"mo_sin_old_rev_tl_op": {0, 600},
		"bc_open_to_buy":       {0, 100000},
		"mort_acc":             {0, 20},
		"total_bc_limit":       {0, 100000},
		"avg_cur_bal":          {0, 100000},
		"open_rv_24m":          {0, 20},
	}
	for name, bounds := range cases {
		field, ok := s.Field(name)
		if !ok {
			t.Fatalf("field %s missing", name)
		}
		if field.Min != bounds[0] || !field.HasMax() || field.MaxValue() != bounds[1] {
			t.Fatalf("%s bounds: want [%v,%v], got [%v,%v]", name, bounds[0], bounds[1], field.Min, field.MaxValue())
		}
	}
}

func TestDefaultMeans_CoverSchema(t *testing.T) {
	means := schema.DefaultMeans()
	for _, name := range schema.Default().Names() {
		if _, ok := means[name]; !ok {
			t.Fatalf("mean missing for %s", name)
		}
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := schema.New(
		schema.FieldSpec{Name: "a", Max: schema.Bound(1)},
		schema.FieldSpec{Name: " a "},
	)
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestNew_RejectsInvertedBounds(t *testing.T) {
	if _, err := schema.New(schema.FieldSpec{Name: "a", Min: 5, Max: schema.Bound(1)}); err == nil {
		t.Fatalf("expected bounds error")
	}
	if _, err := schema.New(); err == nil {
		t.Fatalf("expected empty schema error")
	}
}

func TestSchema_FieldsIsCopy(t *testing.T) {
	s := schema.Default()
	fields := s.Fields()
	fields[0].Label = "mutated"

	field, _ := s.Field("int_rate")
	if field.Label == "mutated" {
		t.Fatalf("schema leaked internal slice")
	}
}

func TestFieldSpec_Helpers(t *testing.T) {
	open := schema.FieldSpec{Name: "open_ended"}
	if open.HasMax() || open.DisplayLabel() != "open_ended" || open.StepAttr() != "any" {
		t.Fatalf("unexpected helpers for open field: %+v", open)
	}
	if got := schema.FormatNumber(100000); got != "100000" {
		t.Fatalf("format number: got %s", got)
	}
	if got := (schema.FieldSpec{Step: 0.01}).StepAttr(); got != "0.01" {
		t.Fatalf("step attr: got %s", got)
	}
}

package present_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskboard/pkg/form"
	"github.com/goliatone/go-riskboard/pkg/present"
	"github.com/goliatone/go-riskboard/pkg/schema"
)

func TestImpactBars(t *testing.T) {
	s := schema.MustNew(
		schema.FieldSpec{Name: "int_rate", Label: "Interest Rate (%)", Max: schema.Bound(40)},
		schema.FieldSpec{Name: "term", Label: "Term (Months)", Min: 12, Max: schema.Bound(60)},
		schema.FieldSpec{Name: "dti", Label: "DTI", Max: schema.Bound(50)},
	)
	means := map[string]float64{"int_rate": 11, "term": 36}

	got := present.ImpactBarsFromRaw(s, form.Raw{"int_rate": "13.99", "term": "abc"}, means)
	eleven, thirtySix := 11.0, 36.0
	want := []present.Bar{
		{Field: "int_rate", Label: "Interest Rate (%)", Applicant: 13.99, Provided: true, Mean: &eleven},
		{Field: "term", Label: "Term (Months)", Mean: &thirtySix},
		{Field: "dti", Label: "DTI"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bars mismatch (-want +got):\n%s", diff)
	}
}

func TestImpactBars_DefaultMeansCoverSchema(t *testing.T) {
	bars := present.ImpactBars(schema.Default(), nil, schema.DefaultMeans())
	if len(bars) != 11 {
		t.Fatalf("expected 11 bars, got %d", len(bars))
	}
	for _, bar := range bars {
		if bar.Mean == nil {
			t.Fatalf("%s: expected default mean", bar.Field)
		}
	}
}

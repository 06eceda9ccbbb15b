package present

import (
	"github.com/goliatone/go-riskboard/pkg/form"
	"github.com/goliatone/go-riskboard/pkg/schema"
)

// Bar is one row of the applicant-vs-population comparison.
type Bar struct {
	Field     string   `json:"field"`
	Label     string   `json:"label"`
	Applicant float64  `json:"applicant"`
	Provided  bool     `json:"provided"`
	Mean      *float64 `json:"mean,omitempty"`
}

// ImpactBars builds one row per schema field in schema order. Values missing
// from values are reported as zero with Provided unset; fields without a
// mean carry a nil Mean.
func ImpactBars(s schema.Schema, values map[string]float64, means map[string]float64) []Bar {
	fields := s.Fields()
	out := make([]Bar, 0, len(fields))
	for _, field := range fields {
		bar := Bar{Field: field.Name, Label: field.DisplayLabel()}
		if value, ok := values[field.Name]; ok {
			bar.Applicant = value
			bar.Provided = true
		}
		if mean, ok := means[field.Name]; ok {
			m := mean
			bar.Mean = &m
		}
		out = append(out, bar)
	}
	return out
}

// ImpactBarsFromRaw parses the raw form text before building bars, so the
// chart can follow the form while it is being edited.
func ImpactBarsFromRaw(s schema.Schema, raw form.Raw, means map[string]float64) []Bar {
	values := make(map[string]float64, s.Len())
	for _, name := range s.Names() {
		if value, ok := form.ParseValue(raw.Get(name)); ok {
			values[name] = value
		}
	}
	return ImpactBars(s, values, means)
}

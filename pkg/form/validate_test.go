package form_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskboard/pkg/form"
	"github.com/goliatone/go-riskboard/pkg/schema"
)

func validRaw() form.Raw {
	return form.Raw{
		"int_rate":             "13.99",
		"term":                 "36",
		"dti":                  "18.5",
		"fico_range_high":      "720",
		"acc_open_past_24mths": "2",
		"mo_sin_old_rev_tl_op": "60",
		"bc_open_to_buy":       "4000",
		"mort_acc":             "1",
		"total_bc_limit":       "12000",
		"avg_cur_bal":          "8500",
		"open_rv_24m":          "1",
	}
}

func TestValidateField_BoundsInclusive(t *testing.T) {
	for _, field := range schema.Default().Fields() {
		if _, err := form.ValidateField(field, schema.FormatNumber(field.Min)); err != nil {
			t.Fatalf("%s: min should pass: %v", field.Name, err)
		}
		if _, err := form.ValidateField(field, schema.FormatNumber(field.MaxValue())); err != nil {
			t.Fatalf("%s: max should pass: %v", field.Name, err)
		}
	}
}

func TestValidateField_RequiredRegardlessOfBounds(t *testing.T) {
	inputs := []string{"", "   ", "abc", "12abc", "NaN", "Inf", "-Inf", "1e400"}
	for _, field := range schema.Default().Fields() {
		for _, input := range inputs {
			_, err := form.ValidateField(field, input)
			fe, ok := err.(*form.FieldError)
			if !ok || fe.Reason != form.ReasonRequired {
				t.Fatalf("%s %q: expected required error, got %v", field.Name, input, err)
			}
		}
	}
}

func TestValidateField_Messages(t *testing.T) {
	s := schema.Default()
	fico, _ := s.Field("fico_range_high")
	bal, _ := s.Field("bc_open_to_buy")

	cases := []struct {
		field schema.FieldSpec
		raw   string
		want  string
	}{
		{fico, "", "FICO Range High is required."},
		{fico, "299.99", "FICO Range High cannot be less than 300."},
		{fico, "851", "FICO Range High cannot be greater than 850."},
		{bal, "100000.5", "Bankcard Open to Buy ($) cannot be greater than 100000."},
	}
	for _, tc := range cases {
		_, err := form.ValidateField(tc.field, tc.raw)
		if err == nil || err.Error() != tc.want {
			t.Fatalf("%s %q: want %q, got %v", tc.field.Name, tc.raw, tc.want, err)
		}
	}
}

func TestValidateField_OpenEnded(t *testing.T) {
	field := schema.FieldSpec{Name: "income", Label: "Income", Min: 0}
	if _, err := form.ValidateField(field, "1e12"); err != nil {
		t.Fatalf("open-ended field should accept large values: %v", err)
	}
}

func TestValidate_RecomputesAllFields(t *testing.T) {
	s := schema.Default()
	raw := validRaw()
	raw.Set("term", "6")
	delete(raw, "dti")
	raw.Set("not_in_schema", "oops")

	errs := form.Validate(s, raw)
	want := form.Errors{
		"term": "Term (Months) cannot be less than 12.",
		"dti":  "Debt-to-Income Ratio (%) is required.",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	name, msg, ok := errs.First(s)
	if !ok || name != "term" || msg != want["term"] {
		t.Fatalf("first error: got %s %q", name, msg)
	}
	if diff := cmp.Diff([]string{want["term"], want["dti"]}, errs.Messages(s)); diff != "" {
		t.Fatalf("messages order mismatch (-want +got):\n%s", diff)
	}

	raw.Set("term", "36")
	raw.Set("dti", "18.5")
	if errs := form.Validate(s, raw); !errs.Empty() {
		t.Fatalf("stale errors after fix: %v", errs)
	}
}

func TestToRecord_IffNoErrors(t *testing.T) {
	s := schema.Default()

	record, errs := form.ToRecord(s, validRaw())
	if !errs.Empty() || record == nil {
		t.Fatalf("expected record, got errs %v", errs)
	}
	if record["int_rate"] != 13.99 || record["avg_cur_bal"] != 8500 || len(record) != s.Len() {
		t.Fatalf("unexpected record: %v", record)
	}

	for _, name := range s.Names() {
		raw := validRaw().With(name, "")
		record, errs := form.ToRecord(s, raw)
		if record != nil {
			t.Fatalf("%s empty: record must be nil", name)
		}
		if diff := cmp.Diff(form.Validate(s, raw), errs); diff != "" {
			t.Fatalf("%s: ToRecord errors differ from Validate (-want +got):\n%s", name, diff)
		}
	}

	if record, _ := form.ToRecord(s, form.NewRaw()); record != nil {
		t.Fatalf("empty raw must not produce a record")
	}
}

func TestRecord_JSONPayload(t *testing.T) {
	record, _ := form.ToRecord(schema.Default(), validRaw())
	payload, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]float64
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(map[string]float64(record), decoded); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

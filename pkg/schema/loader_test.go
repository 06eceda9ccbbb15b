package schema_test

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskboard/pkg/schema"
)

func TestLoadFS_YAML(t *testing.T) {
	fsys := fstest.MapFS{
		"fields.yaml": {Data: []byte(`
fields:
  - name: int_rate
    label: "<b>Interest</b> Rate (%)"
    min: 0
    max: 40
    step: 0.01
    tooltip: "Annual rate & fees"
  - name: avg_cur_bal
    label: Average Current Balance ($)
    min: 0
    max: 200000
means:
  int_rate: 11
`)},
	}

	doc, err := schema.LoadFS(fsys, "fields.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"int_rate", "avg_cur_bal"}, doc.Schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	rate, _ := doc.Schema.Field("int_rate")
	if rate.Label != "Interest Rate (%)" {
		t.Fatalf("label not sanitized: %q", rate.Label)
	}
	if rate.Tooltip != "Annual rate & fees" {
		t.Fatalf("tooltip mangled: %q", rate.Tooltip)
	}
	bal, _ := doc.Schema.Field("avg_cur_bal")
	if bal.MaxValue() != 200000 {
		t.Fatalf("max not loaded: %v", bal.MaxValue())
	}
	if diff := cmp.Diff(map[string]float64{"int_rate": 11}, doc.Means); diff != "" {
		t.Fatalf("means mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_JSON(t *testing.T) {
	fsys := fstest.MapFS{
		"fields.json": {Data: []byte(`{"fields":[{"name":"term","label":"Term","min":12,"max":60,"step":12}]}`)},
	}

	doc, err := schema.LoadFS(fsys, "fields.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	field, ok := doc.Schema.Field("term")
	if !ok || field.Step != 12 || field.MaxValue() != 60 {
		t.Fatalf("unexpected field: %+v", field)
	}
	if doc.Means != nil {
		t.Fatalf("expected nil means, got %v", doc.Means)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"empty.yaml":   {Data: []byte("  ")},
		"dupes.yaml":   {Data: []byte("fields:\n  - name: a\n  - name: a\n")},
		"badmean.yaml": {Data: []byte("fields:\n  - name: a\nmeans:\n  b: 1\n")},
		"fields.txt":   {Data: []byte("fields: []")},
	}

	for _, name := range []string{"empty.yaml", "dupes.yaml", "badmean.yaml", "fields.txt", "missing.yaml"} {
		if _, err := schema.LoadFS(fsys, name); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

package parser

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskboard/pkg/schema"
)

const scoringDocument = `{
  "openapi": "3.0.2",
  "info": { "title": "Credit Risk API", "version": "0.1.0" },
  "paths": {
    "/score": {
      "post": {
        "operationId": "score",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/Applicant" }
            }
          }
        },
        "responses": { "200": { "description": "ok" } }
      }
    }
  },
  "components": {
    "schemas": {
      "Applicant": {
        "type": "object",
        "required": ["int_rate", "term", "fico_range_high"],
        "properties": {
          "int_rate": { "type": "number", "title": "Int Rate", "minimum": 0, "maximum": 40 },
          "term": { "type": "integer", "title": "Term", "minimum": 12, "maximum": 60, "multipleOf": 12 },
          "fico_range_high": { "type": "integer", "title": "Fico Range High" },
          "annual_inc": {
            "type": "number",
            "title": "Annual Income",
            "description": "Self-reported <i>annual</i> income.",
            "minimum": 0,
            "x-placeholder": "e.g., 55000"
          },
          "purpose": { "type": "string" }
        }
      }
    }
  }
}`

func TestParserFields(t *testing.T) {
	p := New(Options{Fallback: schema.Default()})

	got, err := p.Fields(context.Background(), []byte(scoringDocument), "score")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	fico, _ := schema.Default().Field("fico_range_high")
	want := []schema.FieldSpec{
		{
			Name:        "int_rate",
			Label:       "Interest Rate (%)",
			Min:         0,
			Max:         schema.Bound(40),
			Step:        0.01,
			Placeholder: "e.g., 13.99",
			Tooltip:     "Annual interest rate for the loan (percentage).",
		},
		{
			Name:        "term",
			Label:       "Term (Months)",
			Min:         12,
			Max:         schema.Bound(60),
			Step:        12,
			Placeholder: "e.g., 36",
			Tooltip:     "Length of the loan in months (typically 36 or 60).",
		},
		fico,
		{
			Name:        "annual_inc",
			Label:       "Annual Income",
			Min:         0,
			Placeholder: "e.g., 55000",
			Tooltip:     "Self-reported annual income.",
		},
	}
	if diff := cmp.Diff(want, got.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParserFields_DefaultOperation(t *testing.T) {
	got, err := New(Options{}).Fields(context.Background(), []byte(scoringDocument), "")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	term, ok := got.Field("term")
	if !ok || term.Label != "Term" || term.Step != 12 {
		t.Fatalf("unexpected term field: %+v", term)
	}
	fico, _ := got.Field("fico_range_high")
	if fico.Step != 1 || fico.HasMax() {
		t.Fatalf("integer without bounds should step by 1 and stay open: %+v", fico)
	}
}

func TestParserFields_Errors(t *testing.T) {
	p := New(Options{})
	ctx := context.Background()

	if _, err := p.Fields(ctx, nil, "score"); err == nil {
		t.Fatalf("expected empty document error")
	}
	if _, err := p.Fields(ctx, []byte(scoringDocument), "missing"); err == nil {
		t.Fatalf("expected missing operation error")
	}
	if _, err := p.Fields(ctx, []byte(`{"openapi":"3.0.0","info":{"title":"x","version":"1"},"paths":{}}`), ""); err == nil {
		t.Fatalf("expected no paths error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := p.Fields(cancelled, []byte(scoringDocument), "score"); err == nil {
		t.Fatalf("expected context error")
	}
}

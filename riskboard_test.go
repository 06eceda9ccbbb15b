package riskboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskboard/pkg/config"
	"github.com/goliatone/go-riskboard/pkg/schema"
)

const overrideYAML = `fields:
  - name: int_rate
    label: Rate <b>(%)</b>
    min: 0
    max: 35
  - name: annual_inc
    label: Annual Income
    min: 0
`

const openAPIDocument = `{
  "openapi": "3.0.2",
  "info": { "title": "Credit Risk API", "version": "0.1.0" },
  "paths": {
    "/score": {
      "post": {
        "operationId": "score",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["term", "dti"],
                "properties": {
                  "term": { "type": "integer", "minimum": 12, "maximum": 60 },
                  "dti": { "type": "number", "minimum": 0 }
                }
              }
            }
          }
        },
        "responses": { "200": { "description": "ok" } }
      }
    }
  }
}`

func TestResolveSchema_Default(t *testing.T) {
	doc, err := ResolveSchema(context.Background(), config.Default(), nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff(schema.Default().Names(), doc.Schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(schema.DefaultMeans(), doc.Means); diff != "" {
		t.Fatalf("means mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSchema_FileWinsOverOpenAPI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.yaml")
	if err := os.WriteFile(path, []byte(overrideYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := config.Default()
	cfg.SchemaFile = path
	cfg.OpenAPIFile = filepath.Join(dir, "missing.json")

	doc, err := ResolveSchema(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"int_rate", "annual_inc"}, doc.Schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	field, _ := doc.Schema.Field("int_rate")
	if field.Label != "Rate (%)" {
		t.Fatalf("expected sanitized label, got %q", field.Label)
	}
	if _, ok := doc.Means["int_rate"]; !ok {
		t.Fatalf("expected default mean for shared field, got %v", doc.Means)
	}
	if _, ok := doc.Means["annual_inc"]; ok {
		t.Fatalf("expected no mean for unknown field")
	}
}

func TestResolveSchema_OpenAPIOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(openAPIDocument))
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.OpenAPIFile = srv.URL + "/openapi.json"

	doc, err := ResolveSchema(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"term", "dti"}, doc.Schema.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	dti, _ := doc.Schema.Field("dti")
	if dti.Label != "Debt-to-Income Ratio (%)" || dti.MaxValue() != 50 {
		t.Fatalf("expected fallback label and bound, got %+v", dti)
	}
}

func TestResolveSchema_MissingOpenAPI(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPIFile = filepath.Join(t.TempDir(), "missing.json")
	if _, err := ResolveSchema(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for missing document")
	}
}

func TestBuild(t *testing.T) {
	cfg := config.Default()
	cfg.ThemeVariant = "dark"

	app, err := Build(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if app.Palette.Variant != "dark" {
		t.Fatalf("expected dark palette, got %q", app.Palette.Variant)
	}
	if app.Schema.Len() != 11 {
		t.Fatalf("expected 11 default fields, got %d", app.Schema.Len())
	}
	if _, err := app.NewServer(); err != nil {
		t.Fatalf("new server: %v", err)
	}
	if app.NewSession().Schema().Len() != 11 {
		t.Fatalf("expected session to share schema")
	}

	cfg.ThemeVariant = "sepia"
	if _, err := Build(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

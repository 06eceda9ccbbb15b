package riskboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskboard/internal/openapi/loader"
	"github.com/goliatone/go-riskboard/internal/openapi/parser"
	"github.com/goliatone/go-riskboard/pkg/config"
	"github.com/goliatone/go-riskboard/pkg/schema"
)

// ResolveSchema picks the field schema: an explicit schema file wins, then a
// schema derived from the scoring service's OpenAPI document, then the
// built-in defaults.
func ResolveSchema(ctx context.Context, cfg config.Config, logger *zap.Logger) (schema.Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch {
	case cfg.SchemaFile != "":
		doc, err := schema.LoadFile(cfg.SchemaFile)
		if err != nil {
			return schema.Document{}, err
		}
		if doc.Means == nil {
			doc.Means = meansFor(doc.Schema)
		}
		logger.Debug("schema loaded from file", zap.String("path", cfg.SchemaFile), zap.Int("fields", doc.Schema.Len()))
		return doc, nil

	case cfg.OpenAPIFile != "":
		raw, err := NewLoader(cfg).Load(ctx, cfg.OpenAPIFile)
		if err != nil {
			return schema.Document{}, fmt.Errorf("riskboard: load openapi: %w", err)
		}
		s, err := NewParser().Fields(ctx, raw, cfg.OpenAPIOperation)
		if err != nil {
			return schema.Document{}, fmt.Errorf("riskboard: parse openapi: %w", err)
		}
		logger.Debug("schema derived from openapi",
			zap.String("location", cfg.OpenAPIFile),
			zap.String("operation", cfg.OpenAPIOperation),
			zap.Int("fields", s.Len()),
		)
		return schema.Document{Schema: s, Means: meansFor(s), Source: cfg.OpenAPIFile}, nil
	}

	s := schema.Default()
	return schema.Document{Schema: s, Means: schema.DefaultMeans(), Source: "default"}, nil
}

// NewLoader constructs the OpenAPI document loader used by ResolveSchema.
func NewLoader(cfg config.Config) *loader.Loader {
	return loader.New(loader.Options{
		AllowHTTPFallback: true,
		RequestTimeout:    cfg.RequestTimeout,
	})
}

// NewParser constructs the OpenAPI parser, falling back to the built-in field
// texts and bounds for properties that omit them.
func NewParser() *parser.Parser {
	return parser.New(parser.Options{Fallback: schema.Default()})
}

// meansFor keeps the built-in population means of the fields s shares with
// the defaults.
func meansFor(s schema.Schema) map[string]float64 {
	out := make(map[string]float64)
	for name, mean := range schema.DefaultMeans() {
		if _, ok := s.Field(name); ok {
			out[name] = mean
		}
	}
	return out
}

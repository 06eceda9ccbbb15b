// Package parser derives the applicant field schema from the scoring
// service's OpenAPI document.
package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-riskboard/pkg/schema"
)

const (
	placeholderExtensionKey = "x-placeholder"
	labelExtensionKey       = "x-label"
)

var (
	errDocumentEmpty     = errors.New("openapi parser: document payload is empty")
	errNoPaths           = errors.New("openapi parser: document does not contain any paths")
	errOperationNotFound = errors.New("openapi parser: operation not found")
	errNoRequestSchema   = errors.New("openapi parser: operation has no JSON request body")
	errNoNumericFields   = errors.New("openapi parser: request body has no numeric properties")
)

// Options tune how properties map onto fields.
type Options struct {
	// Fallback supplies labels, tooltips, placeholders and bounds for
	// properties that carry a matching name but omit them.
	Fallback schema.Schema
}

// Parser extracts field specs from OpenAPI 3 documents using kin-openapi.
type Parser struct {
	options Options
}

// New constructs a Parser.
func New(options Options) *Parser {
	return &Parser{options: options}
}

// Fields locates operationID (or, when empty, the first POST operation with a
// JSON body) and turns each numeric request-body property into a FieldSpec.
//
// Fields follow the order of the schema's required list, then the remaining
// properties alphabetically. Exclusive bounds are treated as inclusive.
func (p *Parser) Fields(ctx context.Context, raw []byte, operationID string) (schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return schema.Schema{}, err
	}
	if len(raw) == 0 {
		return schema.Schema{}, errDocumentEmpty
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return schema.Schema{}, errNoPaths
	}

	operation, err := findOperation(spec, strings.TrimSpace(operationID))
	if err != nil {
		return schema.Schema{}, err
	}

	body := requestSchema(operation.RequestBody)
	if body == nil {
		return schema.Schema{}, errNoRequestSchema
	}

	fields := make([]schema.FieldSpec, 0, len(body.Properties))
	for _, name := range orderedProperties(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil || !isNumeric(ref.Value) {
			continue
		}
		fields = append(fields, p.fieldFrom(name, ref.Value))
	}
	if len(fields) == 0 {
		return schema.Schema{}, errNoNumericFields
	}

	s, err := schema.New(fields...)
	if err != nil {
		return schema.Schema{}, fmt.Errorf("openapi parser: %w", err)
	}
	return s, nil
}

func findOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, error) {
	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			if operationID == "" {
				if method == "POST" && requestSchema(operation.RequestBody) != nil {
					return operation, nil
				}
				continue
			}
			if operation.OperationID == operationID || strings.ToLower(method)+":"+path == operationID {
				return operation, nil
			}
		}
	}
	if operationID == "" {
		return nil, errOperationNotFound
	}
	return nil, fmt.Errorf("%w: %q", errOperationNotFound, operationID)
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	mt, ok := body.Value.Content["application/json"]
	if !ok || mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil
	}
	value := mt.Schema.Value
	if len(value.Properties) == 0 {
		return nil
	}
	return value
}

func orderedProperties(s *openapi3.Schema) []string {
	seen := make(map[string]bool, len(s.Properties))
	out := make([]string, 0, len(s.Properties))
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	rest := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func isNumeric(s *openapi3.Schema) bool {
	if s.Type == nil {
		return false
	}
	return s.Type.Includes(openapi3.TypeNumber) || s.Type.Includes(openapi3.TypeInteger)
}

func (p *Parser) fieldFrom(name string, src *openapi3.Schema) schema.FieldSpec {
	fallback, hasFallback := p.options.Fallback.Field(name)

	field := schema.FieldSpec{Name: name}
	field.Label = firstNonEmpty(
		stringExtension(src.Extensions, labelExtensionKey),
		fallbackText(hasFallback, fallback.Label),
		src.Title,
	)
	field.Tooltip = firstNonEmpty(src.Description, fallbackText(hasFallback, fallback.Tooltip))
	field.Placeholder = firstNonEmpty(
		stringExtension(src.Extensions, placeholderExtensionKey),
		fallbackText(hasFallback, fallback.Placeholder),
	)

	switch {
	case src.Min != nil:
		field.Min = *src.Min
	case hasFallback:
		field.Min = fallback.Min
	}
	switch {
	case src.Max != nil:
		field.Max = schema.Bound(*src.Max)
	case hasFallback && fallback.Max != nil:
		field.Max = schema.Bound(*fallback.Max)
	}
	switch {
	case src.MultipleOf != nil && *src.MultipleOf > 0:
		field.Step = *src.MultipleOf
	case hasFallback:
		field.Step = fallback.Step
	case src.Type.Includes(openapi3.TypeInteger):
		field.Step = 1
	}

	field.Label = schema.SanitizeText(field.Label)
	field.Tooltip = schema.SanitizeText(field.Tooltip)
	field.Placeholder = schema.SanitizeText(field.Placeholder)
	return field
}

func stringExtension(ext map[string]any, key string) string {
	if value, ok := ext[key].(string); ok {
		return value
	}
	return ""
}

func fallbackText(ok bool, value string) string {
	if !ok {
		return ""
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-riskboard/pkg/schema"
)

// Reason classifies a field validation failure.
type Reason string

const (
	ReasonRequired Reason = "required"
	ReasonBelowMin Reason = "min"
	ReasonAboveMax Reason = "max"
)

// FieldError is the per-field validation failure.
type FieldError struct {
	Field   string
	Reason  Reason
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Errors maps field names to a human-readable message. A present key means
// the field is invalid.
type Errors map[string]string

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// First returns the first failing field in schema order.
func (e Errors) First(s schema.Schema) (string, string, bool) {
	if len(e) == 0 {
		return "", "", false
	}
	for _, name := range s.Names() {
		if msg, ok := e[name]; ok {
			return name, msg, true
		}
	}
	return "", "", false
}

// Messages lists messages in schema order.
func (e Errors) Messages(s schema.Schema) []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	for _, name := range s.Names() {
		if msg, ok := e[name]; ok {
			out = append(out, msg)
		}
	}
	return out
}

// Record is the validated numeric payload sent to the scoring endpoint.
type Record map[string]float64

// Clone returns an independent copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}

// ParseValue parses raw text as a finite number. Surrounding whitespace is
// ignored; anything else that strconv rejects is not a number.
func ParseValue(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// ValidateField checks one raw value against its spec and returns the parsed
// number. Bounds are inclusive.
func ValidateField(field schema.FieldSpec, raw string) (float64, error) {
	label := field.DisplayLabel()
	value, ok := ParseValue(raw)
	if !ok {
		return 0, &FieldError{
			Field:   field.Name,
			Reason:  ReasonRequired,
			Message: fmt.Sprintf("%s is required.", label),
		}
	}
	if value < field.Min {
		return 0, &FieldError{
			Field:   field.Name,
			Reason:  ReasonBelowMin,
			Message: fmt.Sprintf("%s cannot be less than %s.", label, schema.FormatNumber(field.Min)),
		}
	}
	if field.Max != nil && value > *field.Max {
		return 0, &FieldError{
			Field:   field.Name,
			Reason:  ReasonAboveMax,
			Message: fmt.Sprintf("%s cannot be greater than %s.", label, schema.FormatNumber(*field.Max)),
		}
	}
	return value, nil
}

// Validate recomputes the full error map for raw. Names outside the schema are
// ignored and schema fields missing from raw count as empty.
func Validate(s schema.Schema, raw Raw) Errors {
	errs := make(Errors)
	for _, field := range s.Fields() {
		if _, err := ValidateField(field, raw.Get(field.Name)); err != nil {
			errs[field.Name] = err.Error()
		}
	}
	return errs
}

// ToRecord returns the numeric record when every field validates. When any
// field fails the record is nil and the full error map is returned.
func ToRecord(s schema.Schema, raw Raw) (Record, Errors) {
	errs := make(Errors)
	record := make(Record, s.Len())
	for _, field := range s.Fields() {
		value, err := ValidateField(field, raw.Get(field.Name))
		if err != nil {
			errs[field.Name] = err.Error()
			continue
		}
		record[field.Name] = value
	}
	if !errs.Empty() {
		return nil, errs
	}
	return record, errs
}

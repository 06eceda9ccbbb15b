package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errFieldNameMissing  = errors.New("schema: field name is required")
	errFieldBoundsOrder  = errors.New("schema: field max is lower than min")
	errFieldStepNegative = errors.New("schema: field step cannot be negative")
	errSchemaEmpty       = errors.New("schema: at least one field is required")
)

// FieldSpec describes one required numeric applicant input.
type FieldSpec struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label" yaml:"label"`
	Min         float64  `json:"min" yaml:"min"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step        float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Tooltip     string   `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
}

// DisplayLabel falls back to the field name when no label is configured.
func (f FieldSpec) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Name
}

// HasMax reports whether the field is bounded above.
func (f FieldSpec) HasMax() bool {
	return f.Max != nil
}

// MaxValue returns the upper bound, or zero when the field is open-ended.
func (f FieldSpec) MaxValue() float64 {
	if f.Max == nil {
		return 0
	}
	return *f.Max
}

// StepAttr renders the step as an HTML input attribute; "any" when unset.
func (f FieldSpec) StepAttr() string {
	if f.Step <= 0 {
		return "any"
	}
	return FormatNumber(f.Step)
}

func (f FieldSpec) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errFieldNameMissing
	}
	if f.Max != nil && *f.Max < f.Min {
		return fmt.Errorf("%w (%s)", errFieldBoundsOrder, f.Name)
	}
	if f.Step < 0 {
		return fmt.Errorf("%w (%s)", errFieldStepNegative, f.Name)
	}
	return nil
}

// Schema is the canonical ordered list of required inputs. The zero value is
// empty; use New to construct a validated instance.
type Schema struct {
	fields []FieldSpec
	index  map[string]int
}

// New validates and freezes the provided fields. Names must be unique.
func New(fields ...FieldSpec) (Schema, error) {
	if len(fields) == 0 {
		return Schema{}, errSchemaEmpty
	}
	s := Schema{
		fields: make([]FieldSpec, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, field := range fields {
		field.Name = strings.TrimSpace(field.Name)
		if err := field.validate(); err != nil {
			return Schema{}, err
		}
		if _, exists := s.index[field.Name]; exists {
			return Schema{}, fmt.Errorf("schema: duplicate field %q", field.Name)
		}
		if field.Max != nil {
			value := *field.Max
			field.Max = &value
		}
		s.index[field.Name] = len(s.fields)
		s.fields = append(s.fields, field)
	}
	return s, nil
}

// MustNew is New for package-level fixtures; it panics on invalid input.
func MustNew(fields ...FieldSpec) Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns a copy of the ordered field list.
func (s Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns field names in schema order.
func (s Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.Name
	}
	return out
}

// Field looks up a field by name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	idx, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return s.fields[idx], true
}

// Len reports the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// Empty reports whether the schema holds no fields.
func (s Schema) Empty() bool {
	return len(s.fields) == 0
}

// Bound is a small helper for building FieldSpec literals.
func Bound(v float64) *float64 {
	return &v
}

// FormatNumber renders bounds and steps without exponent notation so messages
// read "100000" rather than "1e+05".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

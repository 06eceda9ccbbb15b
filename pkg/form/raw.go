package form

import (
	"strconv"
	"strings"
)

// Raw maps field names to their text exactly as typed. An empty string is the
// empty marker; a missing key is treated the same way.
type Raw map[string]string

// NewRaw returns an empty raw state.
func NewRaw() Raw {
	return make(Raw)
}

// Set stores a raw value without validating it.
func (r Raw) Set(name, value string) {
	r[name] = value
}

// SetNumber stores a numeric value using its shortest text form.
func (r Raw) SetNumber(name string, value float64) {
	r[name] = strconv.FormatFloat(value, 'f', -1, 64)
}

// Get returns the raw text for name, or "" when unset.
func (r Raw) Get(name string) string {
	if r == nil {
		return ""
	}
	return r[name]
}

// With returns a copy of r with name set to value. The receiver is untouched.
func (r Raw) With(name, value string) Raw {
	out := r.Clone()
	out[name] = value
	return out
}

// Clone returns an independent copy.
func (r Raw) Clone() Raw {
	out := make(Raw, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}

// RawFromAny converts decoded JSON values (numbers, strings, null) into raw
// text. Unsupported types become the empty marker so they fail validation
// rather than being coerced.
func RawFromAny(values map[string]any) Raw {
	out := make(Raw, len(values))
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		switch v := value.(type) {
		case string:
			out[key] = v
		case float64:
			out.SetNumber(key, v)
		case int:
			out.SetNumber(key, float64(v))
		case int64:
			out.SetNumber(key, float64(v))
		case interface{ String() string }:
			out[key] = v.String()
		default:
			out[key] = ""
		}
	}
	return out
}

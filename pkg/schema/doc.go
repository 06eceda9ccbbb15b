// Package schema defines the ordered field schema that drives every applicant
// form. A Schema is an immutable, name-unique list of FieldSpec entries; the
// form, scoring and presentation packages all iterate it in order so error
// surfacing, payload layout and chart rows stay aligned. Default returns the
// eleven canonical credit-risk inputs, while LoadFile/LoadFS accept YAML or
// JSON overrides for deployments that tune bounds or copy.
package schema

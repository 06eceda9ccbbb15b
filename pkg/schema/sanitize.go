package schema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func sanitizeField(field FieldSpec) FieldSpec {
	field.Name = strings.TrimSpace(field.Name)
	field.Label = SanitizeText(field.Label)
	field.Tooltip = SanitizeText(field.Tooltip)
	field.Placeholder = SanitizeText(field.Placeholder)
	return field
}

// SanitizeText strips markup from externally supplied copy. Entities produced
// by the policy are decoded again because templates escape on output.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

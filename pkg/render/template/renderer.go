package template

import (
	"io"
)

// FilterFunc transforms a template value. param is nil when the filter is used
// without an argument.
type FilterFunc func(input any, param any) (any, error)

// Renderer renders named templates or inline template text. When writers are
// supplied the output is written to each of them as well as returned.
type Renderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn FilterFunc) error
	GlobalContext(data any) error
}

package riskboard

import (
	"io/fs"

	"github.com/goliatone/go-riskboard/pkg/web"
)

// EmbeddedTemplates exposes the built-in dashboard templates so callers can
// reuse or extend them with their own renderer.
func EmbeddedTemplates() fs.FS {
	return web.TemplatesFS()
}

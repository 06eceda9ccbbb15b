package tui

import (
	"io"

	"go.uber.org/zap"
)

// Option configures the Prompter.
type Option func(*Prompter)

// WithPromptDriver overrides the prompt driver used by the prompter.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithOutput directs reports (gauge line and history table) to w.
func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		if w != nil {
			p.out = w
		}
	}
}

// WithExportPath writes the session history as CSV to path when the loop
// ends. Empty disables the export.
func WithExportPath(path string) Option {
	return func(p *Prompter) {
		p.exportPath = path
	}
}

// WithColor toggles ANSI colours in reports.
func WithColor(enabled bool) Option {
	return func(p *Prompter) {
		p.color = enabled
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prompter) {
		if logger != nil {
			p.logger = logger
		}
	}
}

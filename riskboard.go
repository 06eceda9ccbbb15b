// Package riskboard wires configuration, the field schema, the scoring client
// and the theme palette into the pieces the command line front ends run: the
// web dashboard and the terminal prompter.
package riskboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskboard/pkg/config"
	"github.com/goliatone/go-riskboard/pkg/present"
	"github.com/goliatone/go-riskboard/pkg/renderers/tui"
	"github.com/goliatone/go-riskboard/pkg/schema"
	"github.com/goliatone/go-riskboard/pkg/scoring"
	"github.com/goliatone/go-riskboard/pkg/session"
	"github.com/goliatone/go-riskboard/pkg/web"
)

// App holds the resolved collaborators for one process.
type App struct {
	Config  config.Config
	Schema  schema.Schema
	Means   map[string]float64
	Palette present.Palette
	Scorer  scoring.Scorer
	Logger  *zap.Logger
}

// Build resolves the schema and palette named by cfg and constructs the
// scoring client. A nil logger is replaced with a no-op one.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := ResolveSchema(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	palette, err := present.PaletteFromSelection(present.NewSelector(), present.ThemeName, cfg.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("riskboard: theme: %w", err)
	}

	scorer := scoring.NewClient(
		scoring.WithEndpoint(cfg.Endpoint),
		scoring.WithTimeout(cfg.RequestTimeout),
		scoring.WithLogger(logger),
	)

	return &App{
		Config:  cfg,
		Schema:  doc.Schema,
		Means:   doc.Means,
		Palette: palette,
		Scorer:  scorer,
		Logger:  logger,
	}, nil
}

// NewSession starts a standalone session over the app's schema.
func (a *App) NewSession() *session.Session {
	return session.New(a.Scorer,
		session.WithSchema(a.Schema),
		session.WithLogger(a.Logger),
	)
}

// NewServer builds the dashboard server. Extra options are applied after the
// app defaults.
func (a *App) NewServer(options ...web.Option) (*web.Server, error) {
	base := []web.Option{
		web.WithSchema(a.Schema),
		web.WithMeans(a.Means),
		web.WithPalette(a.Palette),
		web.WithLogger(a.Logger),
		web.WithAddr(a.Config.Addr),
		web.WithSessionTTL(a.Config.SessionTTL),
	}
	return web.New(a.Scorer, append(base, options...)...)
}

// NewPrompter builds the terminal client over a fresh session.
func (a *App) NewPrompter(options ...tui.Option) *tui.Prompter {
	base := []tui.Option{tui.WithLogger(a.Logger)}
	return tui.New(a.NewSession(), append(base, options...)...)
}

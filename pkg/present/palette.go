package present

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Palette token names.
const (
	TokenRiskLow      = "risk.low"
	TokenRiskModerate = "risk.moderate"
	TokenRiskElevated = "risk.elevated"
	TokenRiskHigh     = "risk.high"
	TokenApplicant    = "applicant"
	TokenMean         = "mean"
	TokenLine         = "line"
	TokenSurface      = "surface"
	TokenText         = "text"
)

// ThemeName identifies the built-in manifest.
const ThemeName = "riskboard"

// VariantDark is the built-in dark variant.
const VariantDark = "dark"

var errUnknownVariant = errors.New("present: unknown theme variant")

// Palette is the resolved set of colours for one theme variant.
type Palette struct {
	Theme   string
	Variant string
	Tokens  map[string]string
}

// Manifest returns the built-in go-theme manifest.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenRiskLow:      "#22c55e",
			TokenRiskModerate: "#facc15",
			TokenRiskElevated: "#f97316",
			TokenRiskHigh:     "#ef4444",
			TokenApplicant:    "#3b82f6",
			TokenMean:         "#a3a3a3",
			TokenLine:         "#6366f1",
			TokenSurface:      "#ffffff",
			TokenText:         "#111827",
		},
		Variants: map[string]theme.Variant{
			VariantDark: {
				Tokens: map[string]string{
					TokenMean:    "#737373",
					TokenLine:    "#818cf8",
					TokenSurface: "#111827",
					TokenText:    "#f9fafb",
				},
			},
		},
	}
}

// NewProvider returns a go-theme provider holding the built-in manifest plus
// any extra manifests supplied by the host.
func NewProvider(extra ...*theme.Manifest) (theme.ThemeProvider, error) {
	registry := theme.NewRegistry()
	for _, manifest := range append([]*theme.Manifest{Manifest()}, extra...) {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("present: register theme %q: %w", manifest.Name, err)
		}
	}
	return registry, nil
}

// Selector resolves manifests by name. It satisfies theme.ThemeSelector.
type Selector struct {
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector indexes manifests by name. The first manifest is used when a
// lookup names no theme; with no manifests the built-in one is used.
func NewSelector(manifests ...*theme.Manifest) *Selector {
	sel := &Selector{manifests: make(map[string]*theme.Manifest)}
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{Manifest()}
	}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		if sel.fallback == "" {
			sel.fallback = manifest.Name
		}
		sel.manifests[manifest.Name] = manifest
	}
	return sel
}

// Select returns the named manifest and variant.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("present: unknown theme %q", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownVariant, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// DefaultPalette resolves the base variant of the built-in manifest.
func DefaultPalette() Palette {
	palette, _ := ResolvePalette(Manifest(), "")
	return palette
}

// ResolvePalette merges the variant tokens over the manifest tokens. An empty
// variant selects the base tokens.
func ResolvePalette(manifest *theme.Manifest, variant string) (Palette, error) {
	if manifest == nil {
		manifest = Manifest()
	}
	variant = strings.TrimSpace(variant)
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return Palette{}, fmt.Errorf("%w: %q", errUnknownVariant, variant)
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}
	return Palette{Theme: manifest.Name, Variant: variant, Tokens: tokens}, nil
}

// PaletteFromSelection resolves a palette through any go-theme selector, so
// hosts can supply their own manifests.
func PaletteFromSelection(selector theme.ThemeSelector, name, variant string) (Palette, error) {
	if selector == nil {
		return ResolvePalette(nil, variant)
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Palette{}, fmt.Errorf("present: select theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil {
		return ResolvePalette(nil, variant)
	}
	return ResolvePalette(selection.Manifest, selection.Variant)
}

// Color returns the colour for token, falling back to the built-in base value.
func (p Palette) Color(token string) string {
	if value, ok := p.Tokens[token]; ok && value != "" {
		return value
	}
	return Manifest().Tokens[token]
}

// BucketColor returns the gauge colour for bucket.
func (p Palette) BucketColor(bucket Bucket) string {
	return p.Color(bucket.token())
}

// RendererConfig exposes the palette in the shape go-theme renderers consume,
// with CSS custom properties derived from token names.
func (p Palette) RendererConfig() *theme.RendererConfig {
	tokens := make(map[string]string, len(p.Tokens))
	vars := make(map[string]string, len(p.Tokens))
	for key, value := range p.Tokens {
		tokens[key] = value
		vars["--"+strings.ReplaceAll(key, ".", "-")] = value
	}
	return &theme.RendererConfig{
		Theme:   p.Theme,
		Variant: p.Variant,
		Tokens:  tokens,
		CSSVars: vars,
	}
}

// CSSVars renders the palette as a sorted inline declaration list.
func (p Palette) CSSVars() string {
	vars := p.RendererConfig().CSSVars
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

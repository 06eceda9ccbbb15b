package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskboard/pkg/form"
	"github.com/goliatone/go-riskboard/pkg/schema"
	"github.com/goliatone/go-riskboard/pkg/scoring"
	"github.com/goliatone/go-riskboard/pkg/session"
)

// Prompter drives one session from the terminal: it asks for every field,
// scores the applicant and prints the result until the user stops.
type Prompter struct {
	session    *session.Session
	driver     PromptDriver
	out        io.Writer
	exportPath string
	color      bool
	logger     *zap.Logger
}

// New constructs a prompter for sess. The survey driver writing to stdout is
// used unless WithPromptDriver says otherwise.
func New(sess *session.Session, options ...Option) *Prompter {
	p := &Prompter{
		session: sess,
		out:     os.Stdout,
		color:   true,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(p.out)
	}
	return p
}

// Run loops over prompt, score and report. It returns nil when the user
// declines another round and ErrAborted on interrupt.
func (p *Prompter) Run(ctx context.Context) error {
	if p.session == nil {
		return ErrNoSession
	}
	defer p.export()

	for {
		if err := p.collect(ctx); err != nil {
			return err
		}
		if err := p.score(ctx); err != nil {
			return err
		}
		again, err := p.driver.Confirm(ctx, ConfirmConfig{
			Message: "Score another applicant?",
			Default: true,
		})
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// collect prompts for every field in schema order, seeding each prompt with
// the previous answer.
func (p *Prompter) collect(ctx context.Context) error {
	current := p.session.Snapshot().Raw
	for _, field := range p.session.Schema().Fields() {
		field := field
		value, err := p.driver.Input(ctx, InputConfig{
			Message:   field.DisplayLabel() + ":",
			Default:   current.Get(field.Name),
			Help:      fieldHelp(field),
			Validator: fieldValidator(field),
		})
		if err != nil {
			return err
		}
		p.session.SetField(field.Name, strings.TrimSpace(value))
	}
	return nil
}

func (p *Prompter) score(ctx context.Context) error {
	state, err := p.session.Submit(ctx)
	switch {
	case errors.Is(err, session.ErrInvalidInput):
		return p.driver.Info(ctx, firstMessage(p.session.Schema(), state.Errors))
	case errors.Is(err, scoring.ErrScoringFailed):
		p.logger.Warn("scoring failed", zap.Error(err))
		return p.driver.Info(ctx, p.paint(errorColor(), state.Message))
	case err != nil:
		return err
	case state.Prediction == nil:
		return nil
	}

	p.logger.Debug("scored applicant", zap.Float64("probability", *state.Prediction))
	if err := p.driver.Info(ctx, p.gaugeLine(*state.Prediction)); err != nil {
		return err
	}
	return writeHistoryTable(p.out, p.session.History().Values())
}

func (p *Prompter) export() {
	if p.exportPath == "" || p.session.History().Len() == 0 {
		return
	}
	if err := writeExport(p.exportPath, p.session.History()); err != nil {
		p.logger.Warn("export history", zap.String("path", p.exportPath), zap.Error(err))
		return
	}
	_, _ = fmt.Fprintf(p.out, "History written to %s\n", p.exportPath)
}

func fieldHelp(field schema.FieldSpec) string {
	var parts []string
	if field.Tooltip != "" {
		parts = append(parts, field.Tooltip)
	}
	if field.Placeholder != "" {
		parts = append(parts, field.Placeholder)
	}
	bounds := "min " + schema.FormatNumber(field.Min)
	if field.HasMax() {
		bounds += ", max " + schema.FormatNumber(field.MaxValue())
	}
	parts = append(parts, bounds)
	return strings.Join(parts, " | ")
}

func fieldValidator(field schema.FieldSpec) func(string) error {
	return func(value string) error {
		_, err := form.ValidateField(field, value)
		return err
	}
}

func firstMessage(s schema.Schema, errs form.Errors) string {
	if _, msg, ok := errs.First(s); ok {
		return msg
	}
	return "Please correct the highlighted fields."
}

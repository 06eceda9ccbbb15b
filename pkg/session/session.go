package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskboard/pkg/form"
	"github.com/goliatone/go-riskboard/pkg/history"
	"github.com/goliatone/go-riskboard/pkg/schema"
	"github.com/goliatone/go-riskboard/pkg/scoring"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a previous
	// submission has not completed.
	ErrSubmissionInFlight = errors.New("session: submission already in flight")
	// ErrInvalidInput is returned when the form has validation errors. No
	// request is sent.
	ErrInvalidInput = errors.New("session: form has validation errors")
	errScorerMissing = errors.New("session: scorer is not configured")
)

// Option customises a Session.
type Option func(*Session)

// WithSchema overrides the default field schema.
func WithSchema(s schema.Schema) Option {
	return func(sess *Session) {
		if !s.Empty() {
			sess.schema = s
		}
	}
}

// WithHistory shares an existing history.
func WithHistory(h *history.History) Option {
	return func(sess *Session) {
		if h != nil {
			sess.history = h
		}
	}
}

// WithInitial seeds the raw form values.
func WithInitial(raw form.Raw) Option {
	return func(sess *Session) {
		sess.state = NewState(raw)
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(sess *Session) {
		if logger != nil {
			sess.logger = logger
		}
	}
}

// Session is one visitor's dashboard. It is safe for concurrent use; the
// lock is never held across the scoring call.
type Session struct {
	mu      sync.Mutex
	schema  schema.Schema
	scorer  scoring.Scorer
	history *history.History
	state   State
	logger  *zap.Logger
}

// New builds a session that scores through scorer.
func New(scorer scoring.Scorer, options ...Option) *Session {
	sess := &Session{
		schema:  schema.Default(),
		scorer:  scorer,
		history: history.New(),
		state:   NewState(nil),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(sess)
		}
	}
	return sess
}

// Schema returns the session's field schema.
func (s *Session) Schema() schema.Schema {
	return s.schema
}

// History returns the session's prediction history.
func (s *Session) History() *history.History {
	return s.history
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies action and returns the resulting state. Completions should
// go through Submit; dispatching them directly never touches history.
func (s *Session) Dispatch(action Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.schema, s.state, action)
	return s.state.Clone()
}

// SetField stores one raw value.
func (s *Session) SetField(name, value string) State {
	return s.Dispatch(FieldChanged{Name: name, Value: value})
}

// SetFields stores several raw values in schema order.
func (s *Session) SetFields(raw form.Raw) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range s.schema.Names() {
		if value, ok := raw[name]; ok {
			s.state = Reduce(s.schema, s.state, FieldChanged{Name: name, Value: value})
		}
	}
	return s.state.Clone()
}

// Reset clears the form and abandons any outstanding submission. History is
// kept.
func (s *Session) Reset() State {
	return s.Dispatch(Reset{})
}

// Submit validates the form and, when valid, sends exactly one scoring
// request. It returns ErrInvalidInput without sending anything when the form
// has errors, ErrSubmissionInFlight when a request is outstanding, and the
// scoring error when the request fails.
func (s *Session) Submit(ctx context.Context) (State, error) {
	s.mu.Lock()
	if s.scorer == nil {
		s.mu.Unlock()
		return s.Snapshot(), errScorerMissing
	}
	if s.state.Busy() {
		state := s.state.Clone()
		s.mu.Unlock()
		return state, ErrSubmissionInFlight
	}
	s.state = Reduce(s.schema, s.state, SubmitRequested{})
	if !s.state.Busy() {
		state := s.state.Clone()
		s.mu.Unlock()
		return state, ErrInvalidInput
	}
	generation := s.state.Generation
	record := s.state.Pending.Clone()
	s.mu.Unlock()

	prediction, err := s.scorer.Score(ctx, record)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	if err != nil {
		s.state = Reduce(s.schema, prev, ScoreFailed{Generation: generation, Err: err})
		s.logger.Warn("scoring failed",
			zap.Uint64("generation", generation),
			zap.Error(err),
		)
		return s.state.Clone(), err
	}

	s.state = Reduce(s.schema, prev, ScoreSucceeded{Generation: generation, Probability: prediction.Probability})
	if Accepted(prev, s.state) {
		s.history.Record(prediction.Probability)
		s.logger.Info("applicant scored",
			zap.Uint64("generation", generation),
			zap.Float64("default_probability", prediction.Probability),
		)
	} else {
		s.logger.Debug("ignored stale scoring response", zap.Uint64("generation", generation))
	}
	return s.state.Clone(), nil
}

// Package session holds one visitor's form, submission lifecycle and
// prediction history.
//
// State transitions go through Reduce, a pure function, so every surface
// (browser, JSON API, terminal) shares the same rules:
//
//	Idle -> Validating -> Idle (errors)
//	                   -> Submitting -> Succeeded | Failed
//
// Each accepted submission gets a new generation number. Completions that
// carry an older generation are ignored.
package session

import (
	"github.com/goliatone/go-riskboard/pkg/form"
)

// Phase is the submission lifecycle stage.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// State is an immutable snapshot of the form and its last outcome. Reduce
// never mutates the State it receives.
type State struct {
	Raw        form.Raw    `json:"raw"`
	Errors     form.Errors `json:"errors,omitempty"`
	Phase      Phase       `json:"phase"`
	Prediction *float64    `json:"prediction,omitempty"`
	Message    string      `json:"message,omitempty"`
	Generation uint64      `json:"generation"`
	Pending    form.Record `json:"-"`
}

// NewState returns the idle state for raw.
func NewState(raw form.Raw) State {
	if raw == nil {
		raw = form.NewRaw()
	}
	return State{Raw: raw.Clone(), Phase: PhaseIdle}
}

// Busy reports whether a submission is outstanding.
func (s State) Busy() bool {
	return s.Phase == PhaseSubmitting
}

// HasPrediction reports whether a probability is on display.
func (s State) HasPrediction() bool {
	return s.Prediction != nil
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Raw = s.Raw.Clone()
	if s.Errors != nil {
		out.Errors = make(form.Errors, len(s.Errors))
		for key, value := range s.Errors {
			out.Errors[key] = value
		}
	}
	if s.Prediction != nil {
		p := *s.Prediction
		out.Prediction = &p
	}
	out.Pending = s.Pending.Clone()
	return out
}

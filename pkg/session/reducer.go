package session

import (
	"github.com/goliatone/go-riskboard/pkg/form"
	"github.com/goliatone/go-riskboard/pkg/schema"
	"github.com/goliatone/go-riskboard/pkg/scoring"
)

// Action is an event applied by Reduce.
type Action interface {
	action()
}

// FieldChanged stores a raw value as typed.
type FieldChanged struct {
	Name  string
	Value string
}

// SubmitRequested validates the form and, when valid, starts a submission.
type SubmitRequested struct{}

// ScoreSucceeded completes the submission with the given generation.
type ScoreSucceeded struct {
	Generation  uint64
	Probability float64
}

// ScoreFailed completes the submission with the given generation.
type ScoreFailed struct {
	Generation uint64
	Err        error
}

// Reset clears the form and abandons any outstanding submission.
type Reset struct{}

func (FieldChanged) action()    {}
func (SubmitRequested) action() {}
func (ScoreSucceeded) action()  {}
func (ScoreFailed) action()     {}
func (Reset) action()           {}

// Reduce applies action to state and returns the next state.
func Reduce(s schema.Schema, state State, action Action) State {
	next := state.Clone()

	switch a := action.(type) {
	case FieldChanged:
		if _, ok := s.Field(a.Name); !ok {
			return state
		}
		next.Raw = next.Raw.With(a.Name, a.Value)
		if len(next.Errors) > 0 {
			next.Errors = form.Validate(s, next.Raw)
		}
		return next

	case SubmitRequested:
		if state.Busy() {
			return state
		}
		next.Phase = PhaseValidating
		next.Prediction = nil
		next.Message = ""
		record, errs := form.ToRecord(s, next.Raw)
		if record == nil {
			next.Errors = errs
			next.Phase = PhaseIdle
			next.Pending = nil
			return next
		}
		next.Errors = nil
		next.Phase = PhaseSubmitting
		next.Generation++
		next.Pending = record
		return next

	case ScoreSucceeded:
		if !state.Busy() || a.Generation != state.Generation {
			return state
		}
		p := a.Probability
		next.Phase = PhaseSucceeded
		next.Prediction = &p
		next.Message = ""
		next.Pending = nil
		return next

	case ScoreFailed:
		if !state.Busy() || a.Generation != state.Generation {
			return state
		}
		next.Phase = PhaseFailed
		next.Prediction = nil
		next.Message = scoring.UserMessage
		next.Pending = nil
		return next

	case Reset:
		generation := state.Generation + 1
		next = NewState(nil)
		next.Generation = generation
		return next
	}

	return state
}

// Accepted reports whether applying a completion moved prev into a success
// for that submission. Only accepted successes are recorded in history.
func Accepted(prev, next State) bool {
	return prev.Busy() &&
		next.Phase == PhaseSucceeded &&
		next.Generation == prev.Generation
}

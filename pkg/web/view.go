package web

import (
	"github.com/goliatone/go-riskboard/pkg/form"
	"github.com/goliatone/go-riskboard/pkg/history"
	"github.com/goliatone/go-riskboard/pkg/present"
	"github.com/goliatone/go-riskboard/pkg/schema"
	"github.com/goliatone/go-riskboard/pkg/session"
)

type fieldView struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Tooltip     string `json:"tooltip,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Min         string `json:"min"`
	Max         string `json:"max,omitempty"`
	Step        string `json:"step"`
	Value       string `json:"value"`
	Error       string `json:"error,omitempty"`
}

type gaugeView struct {
	present.Gauge
	Label string `json:"label"`
}

// stateView is the JSON shape of /api/state and the dashboard template data.
type stateView struct {
	Fields     []fieldView     `json:"fields"`
	Raw        form.Raw        `json:"raw"`
	Errors     form.Errors     `json:"errors,omitempty"`
	Messages   []string        `json:"messages,omitempty"`
	Phase      session.Phase   `json:"phase"`
	Busy       bool            `json:"busy"`
	Prediction *float64        `json:"prediction,omitempty"`
	Message    string          `json:"message,omitempty"`
	Gauge      *gaugeView      `json:"gauge,omitempty"`
	Bars       []present.Bar   `json:"bars"`
	History    []present.Point `json:"history"`
	Summary    history.Summary `json:"summary"`
	CSSVars    string          `json:"css_vars"`
}

func (s *Server) buildView(sess *session.Session) (stateView, error) {
	state := sess.Snapshot()
	values := sess.History().Values()
	summary, err := history.SummarizeValues(values)
	if err != nil {
		return stateView{}, err
	}

	view := stateView{
		Fields:     fieldViews(s.schema, state),
		Raw:        state.Raw,
		Errors:     state.Errors,
		Messages:   state.Errors.Messages(s.schema),
		Phase:      state.Phase,
		Busy:       state.Busy(),
		Prediction: state.Prediction,
		Message:    state.Message,
		Bars:       present.ImpactBarsFromRaw(s.schema, state.Raw, s.means),
		History:    present.HistorySeries(values),
		Summary:    summary,
		CSSVars:    s.palette.CSSVars(),
	}
	if state.Prediction != nil {
		g := s.palette.Gauge(*state.Prediction)
		view.Gauge = &gaugeView{Gauge: g, Label: g.Bucket.Label()}
	}
	return view, nil
}

func fieldViews(s schema.Schema, state session.State) []fieldView {
	fields := s.Fields()
	out := make([]fieldView, 0, len(fields))
	for _, field := range fields {
		fv := fieldView{
			Name:        field.Name,
			Label:       field.DisplayLabel(),
			Tooltip:     field.Tooltip,
			Placeholder: field.Placeholder,
			Min:         schema.FormatNumber(field.Min),
			Step:        field.StepAttr(),
			Value:       state.Raw.Get(field.Name),
			Error:       state.Errors[field.Name],
		}
		if field.HasMax() {
			fv.Max = schema.FormatNumber(field.MaxValue())
		}
		out = append(out, fv)
	}
	return out
}

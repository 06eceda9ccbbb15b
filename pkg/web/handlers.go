package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-riskboard/pkg/form"
	"github.com/goliatone/go-riskboard/pkg/history"
	"github.com/goliatone/go-riskboard/pkg/present"
	"github.com/goliatone/go-riskboard/pkg/present/chart"
	"github.com/goliatone/go-riskboard/pkg/scoring"
	"github.com/goliatone/go-riskboard/pkg/session"
)

const maxBodyBytes = 64 << 10

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	view, err := s.buildView(sess)
	if err != nil {
		s.serverError(w, "build view", err)
		return
	}
	html, err := s.renderer.RenderTemplate("dashboard", view)
	if err != nil {
		s.serverError(w, "render dashboard", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// handleFormSubmit applies posted values, then submits or resets, and
// redirects back to the dashboard so a reload never resubmits.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	raw := form.NewRaw()
	for _, name := range s.schema.Names() {
		if values, ok := r.PostForm[name]; ok && len(values) > 0 {
			raw.Set(name, values[0])
		}
	}
	sess.SetFields(raw)

	if r.PostForm.Get("action") == "reset" {
		sess.Reset()
	} else if _, err := sess.Submit(r.Context()); err != nil {
		s.logSubmitError(err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type validateResponse struct {
	Errors form.Errors `json:"errors"`
	Valid  bool        `json:"valid"`
}

// handleValidate stores the posted values and reports errors for those
// fields only.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	raw, err := decodeRaw(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	sess.SetFields(raw)

	errs := make(form.Errors)
	for name, value := range raw {
		field, ok := s.schema.Field(name)
		if !ok {
			continue
		}
		if _, err := form.ValidateField(field, value); err != nil {
			errs[name] = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, validateResponse{Errors: errs, Valid: errs.Empty()})
}

type scoreResponse struct {
	DefaultProbability float64       `json:"default_probability"`
	Gauge              present.Gauge `json:"gauge"`
	History            []float64     `json:"history"`
}

type errorResponse struct {
	Error  string      `json:"error"`
	Detail string      `json:"detail,omitempty"`
	Errors form.Errors `json:"errors,omitempty"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	raw, err := decodeRaw(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	sess.SetFields(raw)

	state, err := sess.Submit(r.Context())
	switch {
	case errors.Is(err, session.ErrInvalidInput):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Errors: state.Errors,
		})
	case errors.Is(err, session.ErrSubmissionInFlight):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "a submission is already in progress"})
	case errors.Is(err, scoring.ErrScoringFailed):
		s.logSubmitError(err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: scoring.UserMessage, Detail: err.Error()})
	case err != nil:
		s.serverError(w, "submit", err)
	case state.Prediction == nil:
		writeJSON(w, http.StatusConflict, errorResponse{Error: "submission was superseded"})
	default:
		writeJSON(w, http.StatusOK, scoreResponse{
			DefaultProbability: *state.Prediction,
			Gauge:              s.palette.Gauge(*state.Prediction),
			History:            sess.History().Values(),
		})
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	view, err := s.buildView(sess)
	if err != nil {
		s.serverError(w, "build view", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleHistoryCSV(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	setAttachment(w, history.ContentTypeCSV, history.ExportFilename)
	if err := sess.History().WriteCSV(w); err != nil {
		s.logger.Warn("write csv export", zap.Error(err))
	}
}

func (s *Server) handleHistoryXLSX(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	setAttachment(w, history.ContentTypeXLSX, history.WorkbookFilename)
	if err := sess.History().WriteXLSX(w); err != nil {
		s.logger.Warn("write xlsx export", zap.Error(err))
	}
}

// handleChart renders into a buffer so a failed render never reaches the
// client as a truncated image.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	state := sess.Snapshot()
	opts := []chart.Option{chart.WithPalette(s.palette)}
	name := chi.URLParam(r, "chart")

	var (
		buf bytes.Buffer
		err error
	)
	switch name {
	case "gauge":
		if state.Prediction == nil {
			err = chart.ErrNoData
			break
		}
		err = chart.Gauge(&buf, s.palette.Gauge(*state.Prediction), opts...)
	case "inputs":
		err = chart.Inputs(&buf, present.ImpactBarsFromRaw(s.schema, state.Raw, s.means), opts...)
	case "history":
		err = chart.History(&buf, present.HistorySeries(sess.History().Values()), opts...)
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	switch {
	case errors.Is(err, chart.ErrNoData):
		w.WriteHeader(http.StatusNoContent)
	case err != nil:
		s.serverError(w, "render chart "+name, err)
	default:
		w.Header().Set("Content-Type", chart.ContentType)
		_, _ = buf.WriteTo(w)
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Sessions: s.store.Len()})
}

func (s *Server) logSubmitError(err error) {
	switch {
	case errors.Is(err, session.ErrInvalidInput), errors.Is(err, session.ErrSubmissionInFlight):
		s.logger.Debug("submission not sent", zap.Error(err))
	default:
		s.logger.Warn("submission failed", zap.Error(err))
	}
}

func (s *Server) serverError(w http.ResponseWriter, what string, err error) {
	s.logger.Error(what, zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// decodeRaw reads a JSON object of field values. Numbers and strings are both
// accepted; anything else becomes the empty marker.
func decodeRaw(w http.ResponseWriter, r *http.Request) (form.Raw, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return form.NewRaw(), nil
		}
		return nil, errors.New("request body must be a JSON object")
	}
	return form.RawFromAny(payload), nil
}

func setAttachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/orchestrator"
	"github.com/goliatone/go-coilform/pkg/render"
	"github.com/goliatone/go-coilform/pkg/results"
	"github.com/goliatone/go-coilform/pkg/validation"
)

// NoticeCalculationFailed is shown above the form when a calculation could
// not be completed. The cause is only logged.
const NoticeCalculationFailed = "Error calculating results"

const calculatePath = "/calculate"

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	query := r.URL.Query()
	values := s.orch.Fields().Defaults()
	mode := coil.ModeMonophase
	if raw := query.Get("mode"); raw != "" {
		if parsed := coil.ParseMode(raw); parsed.Known() {
			mode = parsed
		}
	}
	values.Set(coil.KeyCalculationType, modeValue(mode))
	if raw := query.Get("dimension"); raw != "" {
		values.SwitchDimension(coil.ParseDimension(raw))
	}

	s.renderForm(w, r, http.StatusOK, mode, values.Dimension(), values, render.RenderOptions{})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	values := s.submittedValues(r.PostForm)
	mode := values.Mode()
	if !mode.Known() {
		mode = coil.ModeMonophase
	}

	if previous := r.PostForm.Get(render.HiddenPreviousDimension); previous != "" {
		if chosen := values.Dimension(); chosen != coil.ParseDimension(previous) {
			values.SwitchDimension(chosen)
		}
	}

	switch postedAction(r.PostForm) {
	case render.ActionRefresh, render.ActionDimension:
		s.renderForm(w, r, http.StatusOK, mode, values.Dimension(), values, render.RenderOptions{})
		return
	}

	calc, err := s.orch.Calculate(r.Context(), orchestrator.Submission{
		Mode:      mode,
		Dimension: values.Dimension(),
		Values:    values,
	})
	if err != nil {
		s.logger.Error("calculation failed",
			zap.String("mode", mode.String()),
			zap.Error(err),
		)
		fieldErrs, formErrs := validation.FieldErrors(calc.Validation)
		status := http.StatusBadGateway
		if errors.Is(err, orchestrator.ErrNoEngine) {
			status = http.StatusServiceUnavailable
		}
		s.renderForm(w, r, status, mode, values.Dimension(), values, render.RenderOptions{
			Notice:     NoticeCalculationFailed,
			Errors:     fieldErrs,
			FormErrors: formErrs,
		})
		return
	}

	http.Redirect(w, r, calc.ResultsURL, http.StatusSeeOther)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	output, err := s.orch.Results(r.Context(), orchestrator.ResultsRequest{
		Encoded:  r.URL.Query().Get(results.ParamName),
		Renderer: s.renderer,
		Theme:    s.theme,
		Options:  render.ResultsOptions{BackURL: "/"},
	})
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	s.writeHTML(w, http.StatusOK, output)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, mode coil.Mode, dimension coil.DimensionChoice, values coil.ParameterSet, opts render.RenderOptions) {
	opts.Endpoint = calculatePath
	opts.Hidden = render.MergeHiddenFields(opts.Hidden,
		render.PreviousDimension(string(dimension)),
		render.PreviousMode(mode.Code()),
	)
	output, err := s.orch.Form(r.Context(), orchestrator.FormRequest{
		Mode:          mode,
		Dimension:     dimension,
		Values:        values,
		Renderer:      s.renderer,
		Theme:         s.theme,
		RenderOptions: opts,
	})
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}
	s.writeHTML(w, status, output)
}

func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	s.logger.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "unable to render page", http.StatusInternalServerError)
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("write response", zap.Error(err))
	}
}

// submittedValues overlays the posted fields on the registry defaults.
// Bookkeeping inputs are dropped.
func (s *Server) submittedValues(form url.Values) coil.ParameterSet {
	values := s.orch.Fields().Defaults()
	for key, posted := range form {
		if len(posted) == 0 {
			continue
		}
		switch key {
		case render.ActionName, render.HiddenPreviousDimension, render.HiddenPreviousMode:
			continue
		}
		values.Set(key, strings.TrimSpace(posted[0]))
	}
	return values
}

// postedAction returns the first non-empty action. The form carries an
// empty scripted action input ahead of the submit buttons.
func postedAction(form url.Values) string {
	for _, value := range form[render.ActionName] {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func modeValue(mode coil.Mode) float64 {
	return float64(mode)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

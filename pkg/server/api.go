package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/orchestrator"
	"github.com/goliatone/go-coilform/pkg/validation"
)

// MessageStartJobFailed is the error body of a failed /api/startJob call.
const MessageStartJobFailed = "Failed to process request"

type apiError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type fieldsResponse struct {
	Mode      string           `json:"mode"`
	Code      string           `json:"code"`
	Dimension string           `json:"dimension"`
	Fields    []coil.FieldSpec `json:"fields"`
}

// BuildRequest is the body accepted by /api/build.
type BuildRequest struct {
	Mode      string                  `json:"mode"`
	Dimension string                  `json:"dimension"`
	Values    map[string]any          `json:"values"`
	Driver    *coil.CalculationDriver `json:"driver,omitempty"`
}

// BuildResponse carries the request payload and its advisory issues.
type BuildResponse struct {
	Mode       string                            `json:"mode"`
	Dimension  string                            `json:"dimension"`
	Request    coil.Request                      `json:"request"`
	Validation validation.SchemaValidationResult `json:"validation"`
}

func (s *Server) handleStartJob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req coil.Request
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if req.InputsData == nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "Invalid request body", Details: "inputsData is required"})
		return
	}
	if s.engine == nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: MessageStartJobFailed, Details: orchestrator.ErrNoEngine.Error()})
		return
	}

	body, err := s.engine.StartJob(r.Context(), req)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var status *engine.StatusError
		if errors.As(err, &status) {
			fields = append(fields, zap.Int("upstream_status", status.Code))
		}
		s.logger.Error("start job failed", fields...)
		writeJSON(w, http.StatusInternalServerError, apiError{Error: MessageStartJobFailed, Details: err.Error()})
		return
	}

	contentType := "text/plain; charset=utf-8"
	if json.Valid(body) {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	mode, ok := parseModeParam(query.Get("mode"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "Unknown calculation type", Details: query.Get("mode")})
		return
	}
	dimension := coil.ParseDimension(query.Get("dimension"))

	writeJSON(w, http.StatusOK, fieldsResponse{
		Mode:      mode.String(),
		Code:      mode.Code(),
		Dimension: string(dimension),
		Fields:    s.orch.Fields().Resolve(mode, dimension),
	})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var body BuildRequest
	if err := s.decodeJSON(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "Invalid request body", Details: err.Error()})
		return
	}

	values := s.orch.Fields().Defaults()
	for key, value := range body.Values {
		values.Set(key, value)
	}
	mode, ok := parseModeParam(body.Mode)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "Unknown calculation type", Details: body.Mode})
		return
	}
	if body.Mode == "" {
		mode = coil.ModeUnknown
	}
	var dimension coil.DimensionChoice
	if body.Dimension != "" {
		dimension = coil.ParseDimension(body.Dimension)
	}

	calc, err := s.orch.Prepare(orchestrator.Submission{
		Mode:      mode,
		Dimension: dimension,
		Values:    values,
		Driver:    body.Driver,
	})
	if err != nil {
		s.logger.Error("build failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "Failed to build request", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, BuildResponse{
		Mode:       calc.Mode.String(),
		Dimension:  string(calc.Dimension),
		Request:    calc.Request,
		Validation: calc.Validation,
	})
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(strings.ToLower(ct), "json") {
		return errors.New("content type must be application/json")
	}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	return nil
}

// parseModeParam maps an empty value to Monophase and rejects unknown
// modes.
func parseModeParam(raw string) (coil.Mode, bool) {
	if strings.TrimSpace(raw) == "" {
		return coil.ModeMonophase, true
	}
	mode := coil.ParseMode(raw)
	return mode, mode.Known()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

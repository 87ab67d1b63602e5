package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Error bodies returned when the upstream catalog call fails.
const (
	MessageFetchFailed  = "Failed to fetch coils"
	MessageCreateFailed = "Failed to create coil"
)

var errNoService = errors.New("catalog: no calculation service configured")

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodPost:
		default:
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		if r.Method == http.MethodPost {
			createCoil(w, r, opts)
			return
		}
		listCoils(w, r, opts)
	})
}

func listCoils(w http.ResponseWriter, r *http.Request, opts Options) {
	if opts.Service == nil {
		writeFailure(w, opts.Logger, MessageFetchFailed, errNoService)
		return
	}
	data, err := opts.Service.ListCoils(r.Context())
	if err != nil {
		writeFailure(w, opts.Logger, MessageFetchFailed, err)
		return
	}
	writeJSON(w, r, http.StatusOK, data)
}

func createCoil(w http.ResponseWriter, r *http.Request, opts Options) {
	if opts.Service == nil {
		writeFailure(w, opts.Logger, MessageCreateFailed, errNoService)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, opts.MaxBodySize))
	if err != nil {
		writeFailure(w, opts.Logger, MessageCreateFailed, err)
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, MessageCreateFailed)
		return
	}
	data, err := opts.Service.CreateCoil(r.Context(), body)
	if err != nil {
		writeFailure(w, opts.Logger, MessageCreateFailed, err)
		return
	}
	writeJSON(w, r, http.StatusOK, data)
}

func writeFailure(w http.ResponseWriter, logger *zap.Logger, message string, err error) {
	fields := []zap.Field{zap.Error(err)}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		fields = append(fields, zap.Int("upstream_status", httpErr.StatusCode()))
	}
	logger.Error(message, fields...)
	writeError(w, http.StatusInternalServerError, message)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, data json.RawMessage) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

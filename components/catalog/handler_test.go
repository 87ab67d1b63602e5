package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/testsupport"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return payload.Error
}

func TestHandler_ListPassesThroughCatalog(t *testing.T) {
	fake := &testsupport.Engine{Coils: json.RawMessage(`[{"id":1,"name":"P3012"}]`)}
	h := NewHandler(WithService(fake))

	req := httptest.NewRequest(http.MethodGet, "/api/coils", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	if diff := cmp.Diff(`[{"id":1,"name":"P3012"}]`, rec.Body.String()); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
	if fake.Listed != 1 {
		t.Fatalf("expected one upstream call, got %d", fake.Listed)
	}
}

func TestHandler_ListFailure(t *testing.T) {
	fake := &testsupport.Engine{CoilsErr: &engine.StatusError{Code: http.StatusBadGateway, Body: []byte("down")}}
	h := NewHandler(WithService(fake))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/coils", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != MessageFetchFailed {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestHandler_CreateForwardsBody(t *testing.T) {
	fake := &testsupport.Engine{Created: json.RawMessage(`{"id":7}`)}
	h := NewHandler(WithService(fake))

	req := httptest.NewRequest(http.MethodPost, "/api/coils", strings.NewReader(`{"name":"custom"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"id":7}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if len(fake.Bodies) != 1 || string(fake.Bodies[0]) != `{"name":"custom"}` {
		t.Fatalf("unexpected forwarded bodies %q", fake.Bodies)
	}
}

func TestHandler_CreateFailures(t *testing.T) {
	fake := &testsupport.Engine{CreateErr: errors.New("boom")}
	h := NewHandler(WithService(fake))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/coils", strings.NewReader(`{}`)))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != MessageCreateFailed {
		t.Fatalf("unexpected error message %q", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/coils", strings.NewReader(`not json`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for invalid JSON, got %d", rec.Code)
	}
	if len(fake.Bodies) != 1 {
		t.Fatalf("invalid body must not reach upstream, got %d calls", len(fake.Bodies))
	}
}

func TestHandler_NoService(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/coils", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/coils", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodPost) {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_GuardStatus(t *testing.T) {
	h := NewHandler(
		WithService(&testsupport.Engine{}),
		WithGuard(func(*http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/coils", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

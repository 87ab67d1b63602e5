package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/results"
	"github.com/goliatone/go-coilform/pkg/server"
	"github.com/goliatone/go-coilform/pkg/testsupport"
)

func newHandler(t *testing.T, eng *testsupport.Engine) http.Handler {
	t.Helper()
	opts := []server.Option{}
	if eng != nil {
		opts = append(opts, server.WithEngine(eng))
	}
	return server.New(opts...).Handler()
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, h, req)
}

func assertBody(t *testing.T, rec *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, fragment := range fragments {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected body to contain %q\n%s", fragment, body)
		}
	}
}

func TestFormPage_Defaults(t *testing.T) {
	rec := do(t, newHandler(t, nil), httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	assertBody(t, rec,
		`action="/calculate"`,
		`<input type="hidden" name="_dimension" value="OverallDimensions">`,
		`<input type="hidden" name="_mode" value="1">`,
		`name="FluidTempIn"`,
		`name="OverallDimensionWidth" value="947"`,
	)
}

func TestFormPage_ModeAndDimensionFromQuery(t *testing.T) {
	rec := do(t, newHandler(t, nil), httptest.NewRequest(http.MethodGet, "/?mode=condenser&dimension=coil", nil))
	assertBody(t, rec,
		`id="coil-condenser"`,
		`name="RefrigerantType"`,
		`name="CoilWidth" value="0"`,
		`<legend>Refrigerant</legend>`,
	)
	if strings.Contains(rec.Body.String(), `name="FluidTempIn"`) {
		t.Fatalf("condenser form must not contain monophase fields")
	}
}

func TestFormPage_UnknownPath(t *testing.T) {
	rec := do(t, newHandler(t, nil), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCalculate_RefreshReshapesForm(t *testing.T) {
	eng := &testsupport.Engine{}
	rec := postForm(t, newHandler(t, eng), url.Values{
		"action":          {"refresh"},
		"CalculationType": {"2"},
		"_mode":           {"1"},
		"_dimension":      {"OverallDimensions"},
		"DimensionType":   {"OverallDimensions"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	assertBody(t, rec, `id="coil-direct-expansion"`, `name="EvaporatingTemperature"`, `<input type="hidden" name="_mode" value="2">`)
	if len(eng.Requests) != 0 {
		t.Fatalf("refresh must not call the engine")
	}
}

func TestCalculate_DimensionSwitchResetsPairs(t *testing.T) {
	rec := postForm(t, newHandler(t, &testsupport.Engine{}), url.Values{
		"action":                {"", "dimension"},
		"DimensionType":         {"CoilDimensions"},
		"_dimension":            {"OverallDimensions"},
		"CoilWidth":             {"600"},
		"OverallDimensionWidth": {"947"},
	})
	assertBody(t, rec,
		`name="CoilWidth" value="0"`,
		`<input type="hidden" name="_dimension" value="CoilDimensions">`,
	)
	if strings.Contains(rec.Body.String(), `name="OverallDimensionWidth"`) {
		t.Fatalf("overall pair must be hidden after switching to coil dimensions")
	}
}

func TestCalculate_DimensionChangeResetsPairsOnSubmit(t *testing.T) {
	eng := &testsupport.Engine{Result: []byte(`{"ErrorCode": 0}`)}
	postForm(t, newHandler(t, eng), url.Values{
		"action":          {"", "calculate"},
		"CalculationType": {"1"},
		"DimensionType":   {"OverallDimensions"},
		"_dimension":      {"CoilDimensions"},
	})

	req := eng.LastRequest(t)
	got := map[string]any{}
	for _, key := range coil.DimensionKeys() {
		got[key], _ = req.InputsData.Get(key)
	}
	want := map[string]any{
		coil.KeyOverallDimensionWidth:  0.0,
		coil.KeyOverallDimensionHeight: 0.0,
		coil.KeyCoilWidth:              0.0,
		coil.KeyCoilHeight:             0.0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dimension pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculate_RedirectsToResults(t *testing.T) {
	eng := &testsupport.Engine{Result: []byte(`{"AirOutTemperature": 12.5, "ErrorCode": 0}`)}
	rec := postForm(t, newHandler(t, eng), url.Values{
		"action":           {"", "calculate"},
		"CalculationType":  {"1"},
		"AirInTemperature": {"30"},
		"DimensionType":    {"OverallDimensions"},
		"_dimension":       {"OverallDimensions"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body.String())
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/results?result=") {
		t.Fatalf("location = %q", location)
	}

	req := eng.LastRequest(t)
	got, _ := req.InputsData.Get(coil.KeyAirInTemperature)
	if diff := cmp.Diff(30.0, got); diff != "" {
		t.Fatalf("AirInTemperature mismatch (-want +got):\n%s", diff)
	}
	if req.InputsData.Has("_dimension") || req.InputsData.Has("action") {
		t.Fatalf("bookkeeping inputs leaked into payload: %v", req.InputsData.Keys())
	}
}

func TestCalculate_FailureRendersGenericNotice(t *testing.T) {
	eng := &testsupport.Engine{StartErr: &engine.StatusError{Code: 500, Body: []byte("stack trace")}}
	rec := postForm(t, newHandler(t, eng), url.Values{"CalculationType": {"3"}})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	assertBody(t, rec, server.NoticeCalculationFailed, `id="coil-condenser"`)
	if strings.Contains(rec.Body.String(), "stack trace") {
		t.Fatalf("engine error body must not reach the page")
	}
}

func TestCalculate_WithoutEngine(t *testing.T) {
	rec := postForm(t, newHandler(t, nil), url.Values{"action": {"calculate"}})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	assertBody(t, rec, server.NoticeCalculationFailed)
}

func TestCalculate_MethodNotAllowed(t *testing.T) {
	rec := do(t, newHandler(t, nil), httptest.NewRequest(http.MethodGet, "/calculate", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("allow = %q", allow)
	}
}

func TestResults_NoParam(t *testing.T) {
	rec := do(t, newHandler(t, nil), httptest.NewRequest(http.MethodGet, "/results", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	assertBody(t, rec, results.NoResultsMessage)
}

func TestResults_MalformedParamShowsFallback(t *testing.T) {
	target := "/results?" + url.Values{results.ParamName: {"engine <b>exploded</b>"}}.Encode()
	rec := do(t, newHandler(t, nil), httptest.NewRequest(http.MethodGet, target, nil))
	assertBody(t, rec, "engine &lt;b&gt;exploded&lt;/b&gt;</pre>")
}

func TestResults_RendersEntries(t *testing.T) {
	raw := testsupport.MustParseRaw(t, `{"AirOutTemperature": 12.5, "CoilWeight": 0}`)
	target, err := results.ResultsURL("/results", raw)
	if err != nil {
		t.Fatalf("results url: %v", err)
	}
	rec := do(t, newHandler(t, nil), httptest.NewRequest(http.MethodGet, target, nil))
	assertBody(t, rec, "Air outlet temperature", "12.5", `class="is-zero"`, `href="/"`)
}

func TestStartJob_ProxiesBody(t *testing.T) {
	eng := &testsupport.Engine{Result: []byte(`{"ok":true}`)}
	body := `{"inputsData":{"CalculationType":1,"CoilType":2},"optionsData":[0]}`
	req := httptest.NewRequest(http.MethodPost, "/api/startJob", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := do(t, newHandler(t, eng), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != `{"ok":true}` {
		t.Fatalf("body = %q", got)
	}
	sent := eng.LastRequest(t)
	if diff := cmp.Diff([]string{"CalculationType", "CoilType"}, sent.InputsData.Keys()); diff != "" {
		t.Fatalf("forwarded key order mismatch (-want +got):\n%s", diff)
	}
}

func TestStartJob_Failure(t *testing.T) {
	eng := &testsupport.Engine{StartErr: errors.New("connection refused")}
	req := httptest.NewRequest(http.MethodPost, "/api/startJob", strings.NewReader(`{"inputsData":{},"optionsData":[0]}`))
	rec := do(t, newHandler(t, eng), req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{"error": server.MessageStartJobFailed, "details": "connection refused"}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("error body mismatch (-want +got):\n%s", diff)
	}
}

func TestStartJob_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/startJob", strings.NewReader(`{`))
	rec := do(t, newHandler(t, &testsupport.Engine{}), req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestFieldsAPI(t *testing.T) {
	h := newHandler(t, nil)
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/fields?mode=3&dimension=coil", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Mode      string `json:"mode"`
		Dimension string `json:"dimension"`
		Fields    []struct {
			Key string `json:"key"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var keys []string
	for _, field := range payload.Fields {
		keys = append(keys, field.Key)
	}
	want := []string{}
	for _, spec := range coil.Resolve(coil.ModeCondenser, coil.DimensionCoil) {
		want = append(want, spec.Key)
	}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("field keys mismatch (-want +got):\n%s", diff)
	}
	if payload.Mode != "condenser" || payload.Dimension != string(coil.DimensionCoil) {
		t.Fatalf("unexpected selection %+v", payload)
	}

	bad := do(t, h, httptest.NewRequest(http.MethodGet, "/api/fields?mode=steam", nil))
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", bad.Code)
	}
}

func TestBuildAPI_DoesNotCallEngine(t *testing.T) {
	eng := &testsupport.Engine{}
	body := `{"mode":"dx","dimension":"overall","values":{"RefrigerantType":"R32","CoilType":"7"},"driver":{"basis":"Rows","value":4}}`
	req := httptest.NewRequest(http.MethodPost, "/api/build", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := do(t, newHandler(t, eng), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(eng.Requests) != 0 {
		t.Fatalf("build must not call the engine")
	}

	var payload struct {
		Mode    string `json:"mode"`
		Request struct {
			InputsData  map[string]any `json:"inputsData"`
			OptionsData []int          `json:"optionsData"`
		} `json:"request"`
		Validation struct {
			Valid bool `json:"valid"`
		} `json:"validation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Mode != "direct-expansion" {
		t.Fatalf("mode = %q", payload.Mode)
	}
	if got := payload.Request.InputsData["RefrigerantType"]; got != "R32" {
		t.Fatalf("RefrigerantType = %v", got)
	}
	if got := payload.Request.InputsData["NoRows"]; got != 4.0 {
		t.Fatalf("NoRows = %v", got)
	}
	if payload.Validation.Valid {
		t.Fatalf("expected advisory issue for unknown coil type")
	}
}

func TestCoilsAPI(t *testing.T) {
	eng := &testsupport.Engine{Coils: json.RawMessage(`[{"id":2}]`)}
	rec := do(t, newHandler(t, eng), httptest.NewRequest(http.MethodGet, "/api/coils", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `[{"id":2}]` {
		t.Fatalf("body = %q", got)
	}
}

func TestHealthAndAssets(t *testing.T) {
	h := newHandler(t, nil)
	health := do(t, h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if health.Code != http.StatusOK || health.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", health.Code, health.Body.String())
	}
	css := do(t, h, httptest.NewRequest(http.MethodGet, "/assets/coilform.css", nil))
	if css.Code != http.StatusOK {
		t.Fatalf("asset status = %d", css.Code)
	}
	assertBody(t, css, ".coilform")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := server.New(server.WithTimeouts(time.Second, time.Second, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("get: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/renderers/tui"
)

// defaultsDriver accepts every default answer.
type defaultsDriver struct{}

func (defaultsDriver) Ask(_ context.Context, q tui.Question) (string, error) {
	return q.Default, nil
}

func (defaultsDriver) Choose(_ context.Context, c tui.Choice) (int, error) {
	if c.Default < 0 {
		return 0, nil
	}
	return c.Default, nil
}

func (defaultsDriver) Confirm(_ context.Context, c tui.Confirmation) (bool, error) {
	return c.Default, nil
}

func (defaultsDriver) Say(context.Context, string) error { return nil }

type fakeEngine struct {
	calls   []string
	apiKeys []string
	jobs    [][]byte
}

func (f *fakeEngine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.apiKeys = append(f.apiKeys, r.Header.Get(engine.APIKeyHeader))
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/Coils":
		_, _ = w.Write([]byte(`[{"id":2,"name":"P3012"}]`))
	case "/StartJob":
		body, _ := io.ReadAll(r.Body)
		f.jobs = append(f.jobs, body)
		_, _ = w.Write([]byte(`{"AirOutTemperature":12.5,"CoilWeight":0,"ErrorCode":0}`))
	default:
		http.NotFound(w, r)
	}
}

func run(t *testing.T, engineURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("API_KEY", "test-key")
	t.Setenv("COILFORM_ENGINE_URL", engineURL)
	t.Setenv("COILFORM_ADDR", "")
	t.Setenv("COILFORM_LOG_LEVEL", "error")

	a := &app{driver: defaultsDriver{}}
	cmd := a.rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFieldsCommand(t *testing.T) {
	out, err := run(t, "http://localhost:1", "fields", "--mode", "condenser", "--dimension", "coil")
	require.NoError(t, err)
	assert.Contains(t, out, "RefrigerantType")
	assert.Contains(t, out, "CoilWidth")
	assert.NotContains(t, out, "FluidTempIn")
	assert.NotContains(t, out, "OverallDimensionWidth")
}

func TestFieldsCommand_JSON(t *testing.T) {
	out, err := run(t, "http://localhost:1", "fields", "--mode", "1", "--json")
	require.NoError(t, err)

	var specs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &specs))
	require.NotEmpty(t, specs)
	assert.Equal(t, "CalculationType", specs[0]["key"])
}

func TestFieldsCommand_UnknownMode(t *testing.T) {
	_, err := run(t, "http://localhost:1", "fields", "--mode", "steam")
	assert.ErrorContains(t, err, "unknown calculation type")
}

func TestFormCommand(t *testing.T) {
	out, err := run(t, "http://localhost:1", "form", "--mode", "dx")
	require.NoError(t, err)
	assert.Contains(t, out, `id="coil-direct-expansion"`)
	assert.Contains(t, out, `action="/calculate"`)
	assert.Contains(t, out, `href="/assets/coilform.css"`)
}

func TestCalcCommand_DryRun(t *testing.T) {
	fake := &fakeEngine{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	out, err := run(t, srv.URL, "calc", "--dry-run")
	require.NoError(t, err)
	assert.Empty(t, fake.calls, "dry run must not reach the engine")

	start := bytes.IndexByte([]byte(out), '{')
	require.GreaterOrEqual(t, start, 0, out)
	var req struct {
		InputsData  map[string]any `json:"inputsData"`
		OptionsData []int          `json:"optionsData"`
	}
	require.NoError(t, json.Unmarshal([]byte(out[start:]), &req))
	assert.Equal(t, 1.0, req.InputsData["CalculationType"])
	assert.Equal(t, []int{0}, req.OptionsData)
}

func TestCalcCommand_DryRunFormat(t *testing.T) {
	fake := &fakeEngine{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	out, err := run(t, srv.URL, "calc", "--dry-run", "--format", "form", "--mode", "dx")
	require.NoError(t, err)
	assert.Empty(t, fake.calls)
	assert.Contains(t, out, "CalculationType=2")
	assert.Contains(t, out, "DimensionType=OverallDimensions")
	assert.NotContains(t, out, "inputsData")

	_, err = run(t, srv.URL, "calc", "--format", "form")
	assert.ErrorContains(t, err, "--format requires --dry-run")

	_, err = run(t, srv.URL, "calc", "--dry-run", "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestCalcCommand_RendersResults(t *testing.T) {
	fake := &fakeEngine{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	out, err := run(t, srv.URL, "calc", "--mode", "condenser")
	require.NoError(t, err)
	assert.Contains(t, out, "Air outlet temperature")
	assert.Contains(t, out, "12.5")

	require.Len(t, fake.jobs, 1)
	assert.Equal(t, "test-key", fake.apiKeys[0])
	var sent map[string]map[string]any
	require.NoError(t, json.Unmarshal(fake.jobs[0], &sent))
	assert.Equal(t, 3.0, sent["inputsData"]["CalculationType"])
}

func TestCoilsCommand(t *testing.T) {
	fake := &fakeEngine{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	out, err := run(t, srv.URL, "coils")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "P3012"`)
	assert.Equal(t, []string{"GET /Coils"}, fake.calls)
}

func TestRoot_InvalidConfig(t *testing.T) {
	_, err := run(t, "not a url", "fields")
	assert.Error(t, err)
}

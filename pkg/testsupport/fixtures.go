package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/results"
)

// Engine is a scripted engine.Service. Every call is recorded; responses
// and errors come from the exported fields.
type Engine struct {
	mu sync.Mutex

	Coils     json.RawMessage
	CoilsErr  error
	Created   json.RawMessage
	CreateErr error
	Result    []byte
	StartErr  error

	Requests []coil.Request
	Bodies   []json.RawMessage
	Listed   int
}

var _ engine.Service = (*Engine)(nil)

func (e *Engine) ListCoils(ctx context.Context) (json.RawMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Listed++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.Coils, e.CoilsErr
}

func (e *Engine) CreateCoil(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Bodies = append(e.Bodies, append(json.RawMessage(nil), body...))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.Created, e.CreateErr
}

func (e *Engine) StartJob(ctx context.Context, req coil.Request) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Requests = append(e.Requests, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.Result, e.StartErr
}

// LastRequest returns the most recent StartJob request.
func (e *Engine) LastRequest(t *testing.T) coil.Request {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Requests) == 0 {
		t.Fatalf("engine: no StartJob call recorded")
	}
	return e.Requests[len(e.Requests)-1]
}

// MustParseRaw parses a result document or fails the test.
func MustParseRaw(t *testing.T, text string) *results.Raw {
	t.Helper()
	raw, err := results.ParseRaw([]byte(text))
	if err != nil {
		t.Fatalf("parse raw result: %v", err)
	}
	return raw
}

// MustJSON marshals value or fails the test.
func MustJSON(t *testing.T, value any) []byte {
	t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

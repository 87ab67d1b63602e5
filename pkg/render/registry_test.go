package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coilform/pkg/model"
	"github.com/goliatone/go-coilform/pkg/render"
	"github.com/goliatone/go-coilform/pkg/results"
)

type formOnly struct{ name string }

func (f formOnly) Name() string        { return f.name }
func (f formOnly) ContentType() string { return "text/plain" }
func (f formOnly) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return []byte(f.name), nil
}

type withResults struct{ formOnly }

func (w withResults) RenderResults(context.Context, results.Presentation, render.ResultsOptions) ([]byte, error) {
	return []byte(w.name), nil
}

func TestRegistry_OrderAndDefault(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(formOnly{"text"}, withResults{formOnly{"html"}})

	if diff := cmp.Diff([]string{"text", "html"}, registry.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := registry.Default(); got != "text" {
		t.Fatalf("default = %q", got)
	}
	renderer, err := registry.Lookup("")
	if err != nil || renderer.Name() != "text" {
		t.Fatalf("lookup default = %v, %v", renderer, err)
	}
	if err := registry.SetDefault("html"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if renderer, _ := registry.Lookup(""); renderer.Name() != "html" {
		t.Fatalf("default not switched: %s", renderer.Name())
	}
	if err := registry.SetDefault("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRegistry_Results(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(formOnly{"text"}, withResults{formOnly{"html"}})

	out, err := registry.Results("")
	if err != nil || out.Name() != "html" {
		t.Fatalf("expected fallback to html, got %v, %v", out, err)
	}
	if _, err := registry.Results("text"); err == nil {
		t.Fatalf("expected error for renderer without results support")
	}
	if _, err := registry.Results("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := render.NewRegistry().Results(""); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestRegistry_RegisterRejects(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := registry.Register(formOnly{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register(formOnly{"text"}, formOnly{"text"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if !registry.Has("text") {
		t.Fatalf("first renderer should stay registered")
	}
}

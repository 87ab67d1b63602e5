// Package coilform is the entry point for embedding the coil calculator:
// resolving the parameter form for a calculation type, building the
// inputsData request and rendering forms and results.
package coilform

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/orchestrator"
	"github.com/goliatone/go-coilform/pkg/render"
	"github.com/goliatone/go-coilform/pkg/renderers/vanilla"
)

type (
	Mode            = coil.Mode
	DimensionChoice = coil.DimensionChoice
	ParameterSet    = coil.ParameterSet
	Request         = coil.Request
	RenderOptions   = render.RenderOptions
	Calculation     = orchestrator.Calculation
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the form for mode and dimension seeded with values.
// A nil values uses the registry defaults.
func GenerateHTML(ctx context.Context, mode Mode, dimension DimensionChoice, values ParameterSet, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	if values == nil {
		values = gen.Fields().Defaults()
	}
	return gen.Form(ctx, orchestrator.FormRequest{
		Mode:      mode,
		Dimension: dimension,
		Values:    values,
		Renderer:  rendererName,
	})
}

// BuildRequest assembles the calculation request without sending it. The
// driver is read from the bookkeeping keys in values.
func BuildRequest(mode Mode, dimension DimensionChoice, values ParameterSet) Request {
	return coil.Build(mode, dimension, values, coil.ParseDriver(values))
}

// Calculate submits values to service and formats the answer.
func Calculate(ctx context.Context, service engine.Service, values ParameterSet, options ...orchestrator.Option) (Calculation, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithEngine(service)}, options...)...)
	return gen.Calculate(ctx, orchestrator.Submission{Values: values})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}

// EmbeddedTemplates exposes the built-in vanilla templates so callers can
// extend them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the default stylesheet for mounting under /assets/.
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(coilform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model.
	Method string
	// Endpoint overrides the form action declared by the form model.
	Endpoint string
	// Values pre-populates controls keyed by field name.
	Values map[string]any
	// Errors carries advisory validation messages keyed by field name.
	// Renderers mark the field but never block submission.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// Notice is a banner shown above the form, for example after a failed
	// calculation.
	Notice string
	// Hidden adds bookkeeping inputs (mode, dimension) to the form.
	Hidden map[string]string
	// Theme carries tokens, partial overrides and asset URLs for HTML output.
	Theme *theme.RendererConfig
}

// ResultsOptions describe a results page render.
type ResultsOptions struct {
	Title string
	// BackURL links back to the form.
	BackURL string
	// RawFallback is the unparsed result value, shown as text when the
	// result could not be parsed.
	RawFallback string
	Theme       *theme.RendererConfig
}

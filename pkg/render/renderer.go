package render

import (
	"context"

	"github.com/goliatone/go-coilform/pkg/model"
	"github.com/goliatone/go-coilform/pkg/results"
)

// Renderer converts a FormModel into a byte representation (HTML, terminal
// text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}

// ResultsRenderer is implemented by renderers that can also display a
// formatted calculation result.
type ResultsRenderer interface {
	Renderer
	RenderResults(ctx context.Context, presentation results.Presentation, options ResultsOptions) ([]byte, error)
}

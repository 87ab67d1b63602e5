package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-coilform/pkg/render"
	"github.com/goliatone/go-coilform/pkg/results"
)

// RenderResults prints the presentation as an aligned two-column table.
// Zero-valued entries follow the non-zero ones.
func (r *Renderer) RenderResults(_ context.Context, presentation results.Presentation, opts render.ResultsOptions) ([]byte, error) {
	var buf bytes.Buffer
	if title := strings.TrimSpace(opts.Title); title != "" {
		fmt.Fprintf(&buf, "%s\n%s\n", title, strings.Repeat("=", len(title)))
	}

	if fallback := strings.TrimSpace(opts.RawFallback); fallback != "" {
		buf.WriteString(fallback)
		buf.WriteString("\n")
		return buf.Bytes(), nil
	}
	if !presentation.Present {
		buf.WriteString(results.NoResultsMessage)
		buf.WriteString("\n")
		return buf.Bytes(), nil
	}
	if presentation.Empty() {
		buf.WriteString(results.EmptyResultMessage)
		buf.WriteString("\n")
		return buf.Bytes(), nil
	}

	outcome := presentation.Outcome
	if outcome.Kind != "" && outcome.Kind != results.OutcomeSuccess {
		fmt.Fprintf(&buf, "%s%s\n\n", r.theme.ErrorPrefix, outcome.Message())
	}

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, entry := range presentation.NonZero {
		fmt.Fprintf(tw, "%s\t%s\n", entry.Label, entry.Display)
	}
	if len(presentation.Zero) > 0 && len(presentation.NonZero) > 0 {
		fmt.Fprintln(tw, "\t")
	}
	for _, entry := range presentation.Zero {
		fmt.Fprintf(tw, "%s\t%s\n", entry.Label, entry.Display)
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("tui: write results: %w", err)
	}
	return buf.Bytes(), nil
}

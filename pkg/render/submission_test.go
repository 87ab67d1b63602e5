package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coilform/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.PreviousMode("2"),
		render.PreviousDimension("CoilDimensions"),
		render.Hidden("  ", "skip"),
		render.Hidden("existing", "override"),
	)

	wantMerged := map[string]string{
		"existing":   "override",
		"_mode":      "2",
		"_dimension": "CoilDimensions",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_dimension", Value: "CoilDimensions"},
		{Name: "_mode", Value: "2"},
		{Name: "existing", Value: "override"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coilform/pkg/model"
	"github.com/goliatone/go-coilform/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	form := model.FormModel{
		Fields: []model.Field{
			{Name: "NoRows", Type: model.FieldTypeNumber},
			{Name: "FluidFlow_dm3s", Type: model.FieldTypeNumber},
			{Name: "RefrigerantType", Type: model.FieldTypeSelect},
		},
	}

	payload := map[string][]string{
		"NoRows":                     {" is required ", "is required"},
		"/inputsData/FluidFlow_dm3s": {"number must be at least 0"},
		"#/RefrigerantType":          {"value is not one of the allowed values"},
		"/inputsData/Unknown":        {"Should fall back to form errors"},
		"":                           {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(form, payload)

	wantFields := map[string][]string{
		"NoRows":          {"is required"},
		"FluidFlow_dm3s":  {"number must be at least 0"},
		"RefrigerantType": {"value is not one of the allowed values"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Unscoped form error", "Should fall back to form errors"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// A form post names its button through ActionName. Refresh and dimension
// re-render the form; calculate submits it.
const (
	ActionName      = "action"
	ActionRefresh   = "refresh"
	ActionDimension = "dimension"
	ActionCalculate = "calculate"
)

// Hidden inputs recording the selection the form was rendered with, so a
// post can tell a dimension or mode switch from an ordinary edit.
const (
	HiddenPreviousDimension = "_dimension"
	HiddenPreviousMode      = "_mode"
)

// HiddenField is one hidden input.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

func PreviousDimension(value string) HiddenField {
	return Hidden(HiddenPreviousDimension, value)
}

func PreviousMode(value string) HiddenField {
	return Hidden(HiddenPreviousMode, value)
}

// MergeHiddenFields copies base and applies fields over it. Blank names
// are dropped; later values win.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for name, value := range base {
		out[strings.TrimSpace(name)] = value
	}
	for _, field := range fields {
		out[strings.TrimSpace(field.Name)] = field.Value
	}
	delete(out, "")
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields lists fields by name so rendered markup is stable.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	var out []HiddenField
	for _, name := range slices.Sorted(maps.Keys(clean)) {
		out = append(out, HiddenField{Name: name, Value: clean[name]})
	}
	return out
}

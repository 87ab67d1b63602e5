package render

import (
	"slices"
	"strings"

	"github.com/goliatone/go-coilform/pkg/model"
)

// ErrorMapping splits advisory messages between the fields on screen and
// the form as a whole.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrorPayload attaches messages to the form's fields. Keys are field
// names or JSON pointers into the request ("/inputsData/NoRows"). Keys that
// name no rendered field, such as a parameter the current mode hides, land
// in Form so the message is still shown. Keys are visited in sorted order.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}
	rendered := make(map[string]bool, len(form.Fields))
	for _, field := range form.Fields {
		rendered[field.Name] = true
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		messages := compactMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		name := fieldFromKey(key, rendered)
		if name == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[name] = compactMessages(append(mapping.Fields[name], messages...))
	}
	mapping.Form = compactMessages(mapping.Form)
	return mapping
}

// MergeFormErrors joins form-level message lists, trimmed and deduplicated
// in first-seen order.
func MergeFormErrors(existing []string, extras ...string) []string {
	return compactMessages(append(slices.Clone(existing), extras...))
}

// fieldFromKey walks the pointer segments from the end and returns the
// first one that names a rendered field.
func fieldFromKey(key string, rendered map[string]bool) string {
	key = strings.TrimPrefix(strings.TrimSpace(key), "#")
	segments := strings.FieldsFunc(key, func(r rune) bool { return r == '/' || r == '.' })
	for i := len(segments) - 1; i >= 0; i-- {
		segment := strings.NewReplacer("~1", "/", "~0", "~").Replace(segments[i])
		if rendered[segment] {
			return segment
		}
	}
	return ""
}

func compactMessages(messages []string) []string {
	var out []string
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message != "" && !slices.Contains(out, message) {
			out = append(out, message)
		}
	}
	return out
}

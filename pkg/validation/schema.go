package validation

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-coilform/pkg/coil"
)

// SchemaIssue represents an advisory validation finding with optional
// location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures validation outcomes. Issues never block a
// submission; renderers show them next to the affected fields.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// fieldBounds holds the physical limits the form advertises.
var fieldBounds = map[string][2]float64{
	coil.KeyAirInHumidity:            {0, 100},
	coil.KeyGlycolPercentageByVolume: {0, 100},
}

var nonNegative = map[string]bool{
	coil.KeyAirInFlowStandard:      true,
	coil.KeyNoRows:                 true,
	coil.KeyNoTubes:                true,
	coil.KeyFinPitch:               true,
	coil.KeyNoCircuits:             true,
	coil.KeyFluidFlow:              true,
	coil.KeyOverallDimensionWidth:  true,
	coil.KeyOverallDimensionHeight: true,
	coil.KeyCoilWidth:              true,
	coil.KeyCoilHeight:             true,
}

// RequestSchema describes the inputsData record for mode and dimension as an
// OpenAPI object schema. Every emitted key is a property; the fields shown
// on the form are required.
func RequestSchema(registry *coil.Registry, mode coil.Mode, dimension coil.DimensionChoice) *openapi3.Schema {
	if registry == nil {
		registry = coil.DefaultRegistry()
	}
	shown := registry.ResolveKeys(mode, dimension)
	visible := make(map[string]struct{}, len(shown))
	for _, key := range shown {
		visible[key] = struct{}{}
	}

	schema := openapi3.NewObjectSchema()
	var required []string
	for _, spec := range registry.All() {
		if spec.Kind == coil.DimensionPair {
			continue
		}
		_, isVisible := visible[spec.Key]
		if !isVisible && !spec.Record {
			continue
		}
		schema = schema.WithProperty(spec.Key, propertySchema(spec))
		if isVisible && spec.Required {
			required = append(required, spec.Key)
		}
	}
	return schema.WithRequired(required)
}

func propertySchema(spec coil.FieldSpec) *openapi3.Schema {
	var prop *openapi3.Schema
	if spec.SendsNumber() {
		prop = openapi3.NewFloat64Schema()
	} else {
		prop = openapi3.NewStringSchema()
	}
	prop.Title = spec.Label

	if spec.Kind == coil.Choice && len(spec.Options) > 0 {
		enum := make([]any, 0, len(spec.Options))
		for _, opt := range spec.Options {
			if spec.SendsNumber() {
				f, _ := coil.ParseFloat(opt.Code)
				enum = append(enum, f)
				continue
			}
			enum = append(enum, opt.Code)
		}
		prop = prop.WithEnum(enum...)
	}
	if bounds, ok := fieldBounds[spec.Key]; ok {
		prop = prop.WithMin(bounds[0]).WithMax(bounds[1])
	} else if nonNegative[spec.Key] {
		prop = prop.WithMin(0)
	}
	return prop
}

// ValidateRequest checks a built request against the schema of mode and
// dimension. The request is not modified.
func ValidateRequest(registry *coil.Registry, mode coil.Mode, dimension coil.DimensionChoice, req coil.Request) SchemaValidationResult {
	return validate(RequestSchema(registry, mode, dimension), req.InputsData.Map())
}

// ValidateValues checks raw form values before coercion. Blank or missing
// required fields are reported; the builder would send them as 0 or "".
func ValidateValues(registry *coil.Registry, mode coil.Mode, dimension coil.DimensionChoice, values map[string]any) SchemaValidationResult {
	if registry == nil {
		registry = coil.DefaultRegistry()
	}
	req := registry.Build(mode, dimension, values, nil)
	doc := req.InputsData.Map()
	for _, key := range registry.ResolveKeys(mode, dimension) {
		if blank(values[key]) {
			delete(doc, key)
		}
	}
	return validate(RequestSchema(registry, mode, dimension), doc)
}

func blank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

func validate(schema *openapi3.Schema, doc map[string]any) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	err := schema.VisitJSON(doc, openapi3.MultiErrors())
	if err == nil {
		return result
	}
	result.Valid = false
	result.Issues = issuesFromError(err)
	sort.SliceStable(result.Issues, func(i, j int) bool {
		return result.Issues[i].Field < result.Issues[j].Field
	})
	return result
}

func issuesFromError(err error) []SchemaIssue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []SchemaIssue
		for _, item := range multi {
			out = append(out, issuesFromError(item)...)
		}
		return out
	}
	return []SchemaIssue{issueFromError(err)}
}

var missingProperty = regexp.MustCompile(`property "([^"]+)" is missing`)

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := schemaErr.JSONPointer()
		path := "/" + strings.Join(pointer, "/")
		field := fieldPathFromPointer(path)
		msg := strings.TrimSpace(schemaErr.Reason)
		if match := missingProperty.FindStringSubmatch(msg); match != nil {
			field = match[1]
			path = "/" + match[1]
			msg = "is required"
		}
		return SchemaIssue{Path: path, Field: field, Message: msg}
	}
	return SchemaIssue{Message: strings.TrimSpace(err.Error())}
}

func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}

// FieldErrors groups issues by field for renderers. Issues without a field
// are returned separately as form-level messages.
func FieldErrors(result SchemaValidationResult) (map[string][]string, []string) {
	fields := make(map[string][]string)
	var form []string
	for _, issue := range result.Issues {
		if issue.Field == "" {
			form = append(form, issue.Message)
			continue
		}
		fields[issue.Field] = append(fields[issue.Field], issue.Message)
	}
	return fields, form
}

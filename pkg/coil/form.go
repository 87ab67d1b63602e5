package coil

import (
	"github.com/goliatone/go-coilform/pkg/model"
)

// Layout groups attached to form fields under model.MetadataGroup.
const (
	GroupGeneral   = "general"
	GroupDimension = "dimension"
	GroupMode      = "mode"
	GroupDriver    = "driver"
)

var driverOptions = []model.Option{
	{Value: "", Label: "Engine decides"},
	{Value: string(DriverRows), Label: "Fixed number of rows"},
	{Value: string(DriverOutletTemperature), Label: "Fixed outlet temperature"},
}

// FormModel projects the resolved field list for mode and dimension onto the
// renderer-facing form model. values supplies the current value of each
// field; keys missing from values fall back to the registry default. The
// dimension selector is emitted right before the concrete pair and the
// optional calculation driver closes the form.
func (r *Registry) FormModel(mode Mode, dimension DimensionChoice, values ParameterSet) model.FormModel {
	if !mode.Known() {
		mode = ModeMonophase
	}
	width, _ := dimension.Keys()
	extension := make(map[string]struct{})
	for _, key := range ModeExtension(mode) {
		extension[key] = struct{}{}
	}

	form := model.FormModel{
		ID:     "coil-" + mode.String(),
		Method: "POST",
		Title:  "Coil Calculation",
		Metadata: map[string]string{
			"mode":      mode.Code(),
			"dimension": string(dimension),
		},
	}

	for _, spec := range r.Resolve(mode, dimension) {
		if spec.Key == width {
			if selector, ok := r.Lookup(KeyDimensionType); ok {
				field := fieldFromSpec(selector, string(dimension))
				field.Metadata[model.MetadataGroup] = GroupDimension
				form.Fields = append(form.Fields, field)
			}
		}
		field := fieldFromSpec(spec, valueOf(spec, values))
		switch {
		case spec.Key == KeyCalculationType:
			field.Value = mode.Code()
			field.Metadata[model.MetadataGroup] = GroupGeneral
		case isDimensionKey(spec.Key):
			field.Metadata[model.MetadataGroup] = GroupDimension
		default:
			if _, ok := extension[spec.Key]; ok {
				field.Metadata[model.MetadataGroup] = GroupMode
			} else {
				field.Metadata[model.MetadataGroup] = GroupGeneral
			}
		}
		form.Fields = append(form.Fields, field)
	}

	form.Fields = append(form.Fields, driverFields(values)...)
	return form
}

// FormModel projects against the default registry.
func FormModel(mode Mode, dimension DimensionChoice, values ParameterSet) model.FormModel {
	return defaultRegistry.FormModel(mode, dimension, values)
}

func driverFields(values ParameterSet) []model.Field {
	basis := ""
	if values != nil {
		if parsed, ok := ParseDriverBasis(values.String(KeyDriverBasis)); ok {
			basis = string(parsed)
		}
	}
	var value any
	if raw, ok := values.Get(KeyDriverValue); ok {
		value = toString(raw)
	}
	return []model.Field{
		{
			Name:     KeyDriverBasis,
			Type:     model.FieldTypeSelect,
			Label:    "Calculation Driver",
			Value:    basis,
			Options:  append([]model.Option(nil), driverOptions...),
			Metadata: map[string]string{model.MetadataGroup: GroupDriver},
		},
		{
			Name:     KeyDriverValue,
			Type:     model.FieldTypeNumber,
			Label:    "Driver Value",
			Value:    value,
			Metadata: map[string]string{model.MetadataGroup: GroupDriver},
		},
	}
}

func fieldFromSpec(spec FieldSpec, value any) model.Field {
	field := model.Field{
		Name:     spec.Key,
		Label:    spec.Label,
		Required: spec.Required,
		Default:  spec.Default,
		Value:    value,
		Metadata: map[string]string{},
	}
	if field.Label == "" {
		field.Label = model.DefaultLabeler(spec.Key)
	}
	if spec.Unit != "" {
		field.Metadata[model.MetadataUnit] = spec.Unit
	}
	switch spec.Kind {
	case Choice, DimensionPair:
		field.Type = model.FieldTypeSelect
		field.Options = make([]model.Option, 0, len(spec.Options))
		for _, opt := range spec.Options {
			field.Options = append(field.Options, model.Option{Value: opt.Code, Label: opt.Label})
		}
		field.Value = toString(value)
	case Text:
		field.Type = model.FieldTypeString
	default:
		field.Type = model.FieldTypeNumber
	}
	return field
}

func valueOf(spec FieldSpec, values ParameterSet) any {
	if values != nil {
		if value, ok := values.Get(spec.Key); ok {
			return value
		}
	}
	return spec.Default
}

func isDimensionKey(key string) bool {
	for _, candidate := range DimensionKeys() {
		if candidate == key {
			return true
		}
	}
	return false
}

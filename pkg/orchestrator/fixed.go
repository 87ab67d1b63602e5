package orchestrator

import (
	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/model"
)

// WithFixedValues pins parameters for a deployment, e.g. a single coil type
// or a condenser-only calculator. Pinned fields render as hidden inputs and
// Prepare ignores submitted values for them.
func WithFixedValues(values map[string]any) Option {
	return func(o *Orchestrator) {
		for key, value := range values {
			if o.fixed == nil {
				o.fixed = coil.ParameterSet{}
			}
			o.fixed.Set(key, value)
		}
	}
}

// pin overlays the fixed values on a copy of values.
func (o *Orchestrator) pin(values coil.ParameterSet) coil.ParameterSet {
	if len(o.fixed) == 0 {
		return values
	}
	out := values.Clone()
	if out == nil {
		out = coil.ParameterSet{}
	}
	for key, value := range o.fixed {
		out.Set(key, value)
	}
	return out
}

func (o *Orchestrator) pinned(key string) bool {
	_, ok := o.fixed[key]
	return ok
}

// hideFixed turns pinned fields into hidden inputs carrying the pinned value.
func (o *Orchestrator) hideFixed(form *model.FormModel) error {
	for i := range form.Fields {
		field := &form.Fields[i]
		value, ok := o.fixed[field.Name]
		if !ok {
			continue
		}
		field.Type = model.FieldTypeHidden
		field.Value = value
		if field.Metadata == nil {
			field.Metadata = map[string]string{}
		}
		field.Metadata[model.MetadataFixed] = "true"
	}
	return nil
}

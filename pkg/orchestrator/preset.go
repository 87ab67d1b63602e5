package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/model"
)

// Transformer rewrites a resolved form before decorators run. mode is the
// calculation type the form was resolved for.
type Transformer interface {
	Transform(ctx context.Context, mode coil.Mode, form *model.FormModel) error
}

// TransformerFunc adapts a function to Transformer.
type TransformerFunc func(ctx context.Context, mode coil.Mode, form *model.FormModel) error

func (fn TransformerFunc) Transform(ctx context.Context, mode coil.Mode, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, mode, form)
}

// Preset relabels the generated form for a deployment. Modes holds
// per-calculation-type sections keyed by mode name or code; they apply on
// top of the base section.
//
//	title: Coil Selection
//	fields:
//	  AirInFlowStandard: {label: Air Volume, unit: "m³/h"}
//	modes:
//	  condenser:
//	    title: Condenser Selection
//
// Overrides for fields the current mode does not resolve are ignored.
type Preset struct {
	Title       string                   `json:"title" yaml:"title"`
	Description string                   `json:"description" yaml:"description"`
	Metadata    map[string]string        `json:"metadata" yaml:"metadata"`
	Fields      map[string]FieldOverride `json:"fields" yaml:"fields"`
	Modes       map[string]Preset        `json:"modes" yaml:"modes"`
}

// FieldOverride replaces the presentation of one parameter.
type FieldOverride struct {
	Label    string            `json:"label" yaml:"label"`
	Help     string            `json:"help" yaml:"help"`
	Unit     string            `json:"unit" yaml:"unit"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
}

var _ Transformer = (*Preset)(nil)

// ParsePreset decodes a preset document. name selects the decoder by
// extension; without one, documents starting with '{' are read as JSON and
// everything else as YAML.
func ParsePreset(name string, data []byte) (*Preset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("preset: document is empty")
	}

	var preset Preset
	var err error
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		err = json.Unmarshal(trimmed, &preset)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(trimmed, &preset)
	default:
		if trimmed[0] == '{' {
			err = json.Unmarshal(trimmed, &preset)
		} else {
			err = yaml.Unmarshal(trimmed, &preset)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("preset: parse %s: %w", presetName(name), err)
	}
	if err := preset.checkModes(); err != nil {
		return nil, err
	}
	return &preset, nil
}

// LoadPreset reads and parses a preset from fsys.
func LoadPreset(fsys fs.FS, name string) (*Preset, error) {
	if fsys == nil {
		return nil, errors.New("preset: filesystem is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("preset: path is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return ParsePreset(name, data)
}

// Transform applies the base section, then the section for mode.
func (p *Preset) Transform(ctx context.Context, mode coil.Mode, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p.apply(form)
	for key, section := range p.Modes {
		if coil.ParseMode(key) == mode {
			section.apply(form)
		}
	}
	return nil
}

func (p *Preset) apply(form *model.FormModel) {
	if p.Title != "" {
		form.Title = p.Title
	}
	if p.Description != "" {
		form.Description = p.Description
	}
	form.Metadata = mergeMetadata(form.Metadata, p.Metadata)
	for i := range form.Fields {
		if override, ok := p.Fields[form.Fields[i].Name]; ok {
			override.apply(&form.Fields[i])
		}
	}
}

func (o FieldOverride) apply(field *model.Field) {
	if o.Label != "" {
		field.Label = o.Label
	}
	if o.Help != "" {
		field.Description = o.Help
	}
	field.Metadata = mergeMetadata(field.Metadata, o.Metadata)
	if o.Unit != "" {
		field.Metadata = mergeMetadata(field.Metadata, map[string]string{model.MetadataUnit: o.Unit})
	}
}

func (p *Preset) checkModes() error {
	for key, section := range p.Modes {
		if !coil.ParseMode(key).Known() {
			return fmt.Errorf("preset: unknown calculation type %q", key)
		}
		if len(section.Modes) > 0 {
			return fmt.Errorf("preset: mode %q cannot nest modes", key)
		}
	}
	return nil
}

func mergeMetadata(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

func presetName(name string) string {
	if name == "" {
		return "document"
	}
	return name
}

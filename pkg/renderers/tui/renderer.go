package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/model"
)

// Renderer drives terminal sessions. Collect runs the coil flow where the
// mode and dimension choices reshape the remaining prompts; RenderResults
// prints the outcome.
type Renderer struct {
	driver       PromptDriver
	registry     *coil.Registry
	outputFormat OutputFormat
	theme        Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		registry:     coil.DefaultRegistry(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	return r, nil
}

// Collect prompts the mode and dimension first, then every field resolved
// for that pair. Switching the dimension resets both width/height pairs.
func (r *Renderer) Collect(ctx context.Context, prefill coil.ParameterSet) (coil.ParameterSet, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	state := NewState(r.registry.Defaults(), prefill)

	initial := r.registry.FormModel(state.Values().Mode(), state.Values().Dimension(), state.Values())
	for _, name := range []string{coil.KeyCalculationType, coil.KeyDimensionType} {
		field, ok := initial.Field(name)
		if !ok {
			continue
		}
		before := state.Values().Dimension()
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
		if name == coil.KeyDimensionType {
			after := coil.ParseDimension(state.Values().String(coil.KeyDimensionType))
			if after != before {
				state.Values().SwitchDimension(after)
			}
		}
	}

	values := state.Values()
	form := r.registry.FormModel(values.Mode(), values.Dimension(), values)
	for _, field := range form.Fields {
		if field.Name == coil.KeyCalculationType || field.Name == coil.KeyDimensionType {
			continue
		}
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}
	return state.Values(), nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	switch field.Type {
	case model.FieldTypeHidden:
		return nil
	case model.FieldTypeSelect:
		if len(field.Options) > 0 {
			return r.promptChoice(ctx, field, state)
		}
	}
	return r.promptText(ctx, field, state)
}

// promptText asks until the answer is acceptable. Number fields must parse
// as a float; an empty answer clears an optional field.
func (r *Renderer) promptText(ctx context.Context, field model.Field, state *State) error {
	numeric := field.Type == model.FieldTypeNumber
	check := func(answer string) error {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			if field.Required {
				return errors.New("is required")
			}
			return nil
		}
		if _, ok := coil.ParseFloat(answer); numeric && !ok {
			return fmt.Errorf("%q is not a number", answer)
		}
		return nil
	}

	question := Question{
		Label:   fieldLabel(field),
		Unit:    field.Metadata[model.MetadataUnit],
		Default: currentString(state, field),
		Help:    field.Description,
		Check:   check,
	}
	for {
		answer, err := r.driver.Ask(ctx, question)
		if err != nil {
			return err
		}
		if err := check(answer); err != nil {
			r.say(ctx, r.theme.ErrorPrefix+"Invalid "+question.Prompt()+": "+err.Error())
			continue
		}
		answer = strings.TrimSpace(answer)
		switch {
		case answer == "" && numeric:
			state.Set(field.Name, nil)
		case numeric:
			parsed, _ := coil.ParseFloat(answer)
			state.Set(field.Name, parsed)
		default:
			state.Set(field.Name, answer)
		}
		return nil
	}
}

func (r *Renderer) promptChoice(ctx context.Context, field model.Field, state *State) error {
	current := currentString(state, field)
	choice := Choice{Label: fieldLabel(field), Default: -1, Help: field.Description}
	for i, opt := range field.Options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		choice.Options = append(choice.Options, label)
		if opt.Value == current && choice.Default < 0 {
			choice.Default = i
		}
	}

	for {
		idx, err := r.driver.Choose(ctx, choice)
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(field.Options) {
			state.Set(field.Name, field.Options[idx].Value)
			return nil
		}
		r.say(ctx, r.theme.ErrorPrefix+"Invalid "+choice.Label+": invalid selection")
	}
}

// Confirm asks a yes/no question through the configured driver.
func (r *Renderer) Confirm(ctx context.Context, label string, def bool) (bool, error) {
	if r.driver == nil {
		return false, ErrNoDriver
	}
	return r.driver.Confirm(ctx, Confirmation{Label: label, Default: def})
}

// Notify prints an informational line prefixed by the theme.
func (r *Renderer) Notify(ctx context.Context, line string) {
	r.say(ctx, r.theme.InfoPrefix+line)
}

func (r *Renderer) say(ctx context.Context, line string) {
	_ = r.driver.Say(ctx, line)
}

// Serialize encodes values in the configured output format.
func (r *Renderer) Serialize(values coil.ParameterSet) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for _, key := range values.Keys() {
			form.Set(key, values.String(key))
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		data, err := json.MarshalIndent(map[string]any(values), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return data, nil
	}
}

func prettyPrint(values coil.ParameterSet) string {
	keys := values.Keys()
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s\n", key, values.String(key))
	}
	return b.String()
}

func currentString(state *State, field model.Field) string {
	if value, ok := state.Get(field.Name); ok {
		return stringify(value)
	}
	return stringify(field.Value)
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	return coil.ParameterSet{"v": value}.String("v")
}

func fieldLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

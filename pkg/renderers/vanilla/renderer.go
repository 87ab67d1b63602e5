package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-coilform/pkg/model"
	"github.com/goliatone/go-coilform/pkg/render"
	rendertemplate "github.com/goliatone/go-coilform/pkg/render/template"
	gotemplate "github.com/goliatone/go-coilform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-coilform/pkg/results"
)

type Option func(*config)

type themeConfig = theme.RendererConfig

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheets      []string
	inlineStyles     bool
	title            string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet on every page.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(href); trimmed != "" {
			cfg.stylesheets = append(cfg.stylesheets, trimmed)
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithTitle sets the page title used when the form has none.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = strings.TrimSpace(title)
	}
}

// Renderer renders coil forms and result pages as server-side HTML.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheets  []string
	inlineStyles string
	title        string
	policy       *bluemonday.Policy
}

var _ render.ResultsRenderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), title: "Coil Calculator"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}
	if err := templates.GlobalContext(pageGlobals()); err != nil {
		return nil, fmt.Errorf("vanilla renderer: template globals: %w", err)
	}

	r := &Renderer{
		templates:   templates,
		stylesheets: append([]string(nil), cfg.stylesheets...),
		title:       cfg.title,
		policy:      inlineMarkupPolicy(),
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the parameter form. Field values come from options.Values
// first, then the form model.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = strings.ToUpper(form.Method)
	}
	if method == "" {
		method = "POST"
	}
	title := form.Title
	if title == "" {
		title = r.title
	}
	endpoint := strings.TrimSpace(options.Endpoint)
	if endpoint == "" {
		endpoint = form.Endpoint
	}

	mapping := render.MapErrorPayload(form, options.Errors)
	data := map[string]any{
		"title":       title,
		"description": r.Sanitize(form.Description),
		"endpoint":    endpoint,
		"method":      method,
		"formId":      form.ID,
		"groups":      r.groups(form, options.Values, mapping.Fields),
		"hidden":      render.SortedHiddenFields(hiddenInputs(form, options.Hidden)),
		"formErrors":  render.MergeFormErrors(options.FormErrors, mapping.Form...),
		"notice":      strings.TrimSpace(options.Notice),
		"page":        r.pageData(options.Theme),
	}

	out, err := r.templates.RenderTemplate(r.partial(options.Theme, PartialForm, FormTemplate), data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(out), nil
}

// RenderResults emits the results page. A presentation without a result
// shows results.NoResultsMessage; a raw fallback is shown escaped, exactly
// as received.
func (r *Renderer) RenderResults(_ context.Context, presentation results.Presentation, options render.ResultsOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	title := options.Title
	if title == "" {
		title = "Calculation Results"
	}

	entries := make([]map[string]any, 0, len(presentation.NonZero)+len(presentation.Zero))
	for _, entry := range presentation.Entries() {
		entries = append(entries, map[string]any{
			"key":     entry.Key,
			"label":   entry.Label,
			"display": entry.Display,
			"nonZero": entry.NonZero,
			"code":    entry.Code,
		})
	}

	data := map[string]any{
		"title":       title,
		"backUrl":     options.BackURL,
		"present":     presentation.Present,
		"empty":       presentation.Empty(),
		"entries":     entries,
		"nonZero":     len(presentation.NonZero),
		"zero":        len(presentation.Zero),
		"fallback":    options.RawFallback,
		"hasFallback": options.RawFallback != "",
		"outcome": map[string]any{
			"kind":    string(presentation.Outcome.Kind),
			"message": presentation.Outcome.Message(),
			"alert":   presentation.Present && presentation.Outcome.Kind != "" && presentation.Outcome.Kind != results.OutcomeSuccess,
		},
		"page": r.pageData(options.Theme),
	}

	out, err := r.templates.RenderTemplate(r.partial(options.Theme, PartialResults, ResultsTemplate), data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render results: %w", err)
	}
	return []byte(out), nil
}

// pageGlobals are the constants every template sees: chrome classes, the
// action button names and the empty-results messages.
func pageGlobals() map[string]any {
	return map[string]any{
		"classes": chromeClasses(),
		"actions": map[string]string{
			"name":      render.ActionName,
			"refresh":   render.ActionRefresh,
			"dimension": render.ActionDimension,
			"calculate": render.ActionCalculate,
		},
		"noResults": results.NoResultsMessage,
		"noValues":  results.EmptyResultMessage,
	}
}

type fieldView struct {
	Name     string       `json:"name"`
	ID       string       `json:"id"`
	Label    string       `json:"label"`
	Help     string       `json:"help"`
	Type     string       `json:"type"`
	Value    string       `json:"value"`
	Required bool         `json:"required"`
	Unit     string       `json:"unit"`
	Options  []optionView `json:"options"`
	Errors   []string     `json:"errors"`
	Invalid  bool         `json:"invalid"`
	Submits  string       `json:"submits"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type groupView struct {
	Name   string      `json:"name"`
	Title  string      `json:"title"`
	Fields []fieldView `json:"fields"`
}

func (r *Renderer) groups(form model.FormModel, values map[string]any, fieldErrors map[string][]string) []groupView {
	mode := form.Metadata["mode"]

	var out []groupView
	index := make(map[string]int)
	for _, field := range form.Fields {
		if field.Type == model.FieldTypeHidden {
			continue
		}
		group := field.Metadata[model.MetadataGroup]
		pos, ok := index[group]
		if !ok {
			pos = len(out)
			index[group] = pos
			out = append(out, groupView{Name: group, Title: groupTitle(group, mode)})
		}
		out[pos].Fields = append(out[pos].Fields, r.fieldView(field, values, fieldErrors[field.Name]))
	}
	return out
}

// hiddenInputs adds hidden-typed form fields to the caller's hidden inputs.
// The field value wins over posted values since hidden fields are pinned.
func hiddenInputs(form model.FormModel, extra map[string]string) map[string]string {
	var fields []render.HiddenField
	for _, field := range form.Fields {
		if field.Type == model.FieldTypeHidden {
			fields = append(fields, render.Hidden(field.Name, formatValue(field.Value)))
		}
	}
	return render.MergeHiddenFields(extra, fields...)
}

func (r *Renderer) fieldView(field model.Field, values map[string]any, errs []string) fieldView {
	value := field.Value
	if override, ok := values[field.Name]; ok {
		value = override
	}
	view := fieldView{
		Name:     field.Name,
		ID:       controlID(field.Name),
		Label:    field.Label,
		Help:     r.Sanitize(field.Description),
		Type:     string(field.Type),
		Value:    formatValue(value),
		Required: field.Required,
		Unit:     field.Metadata[model.MetadataUnit],
		Errors:   errs,
		Invalid:  len(errs) > 0,
	}
	if view.Label == "" {
		view.Label = model.DefaultLabeler(field.Name)
	}
	switch field.Name {
	case "CalculationType":
		view.Submits = render.ActionRefresh
	case "DimensionType":
		view.Submits = render.ActionDimension
	}
	for _, opt := range field.Options {
		view.Options = append(view.Options, optionView{
			Value:    opt.Value,
			Label:    opt.Label,
			Selected: opt.Value == view.Value,
		})
	}
	return view
}

func (r *Renderer) pageData(cfg *themeConfig) map[string]any {
	stylesheets := append([]string(nil), r.stylesheets...)
	var cssVars []string
	themeName := ""
	if cfg != nil {
		themeName = cfg.Theme
		cssVars = render.SortedCSSVars(cfg.CSSVars)
		if cfg.AssetURL != nil {
			if href := cfg.AssetURL(render.AssetStylesheet); href != "" {
				stylesheets = append(stylesheets, href)
			}
		}
	}
	return map[string]any{
		"stylesheets":  stylesheets,
		"inlineStyles": r.inlineStyles,
		"cssVars":      cssVars,
		"theme":        themeName,
	}
}

func (r *Renderer) partial(cfg *themeConfig, key, fallback string) string {
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Partials[key]); name != "" {
			return name
		}
	}
	return fallback
}

// Sanitize keeps the inline markup help text may carry (m<sup>3</sup>/h,
// <em>) and strips everything else.
func (r *Renderer) Sanitize(text string) string {
	return strings.TrimSpace(r.policy.Sanitize(text))
}

func inlineMarkupPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("em", "strong", "sub", "sup", "code", "br")
	return policy
}

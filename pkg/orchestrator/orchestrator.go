package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/model"
	"github.com/goliatone/go-coilform/pkg/render"
	"github.com/goliatone/go-coilform/pkg/renderers/vanilla"
	"github.com/goliatone/go-coilform/pkg/results"
	"github.com/goliatone/go-coilform/pkg/validation"
)

const (
	defaultRendererName = "vanilla"
	defaultResultsPath  = "/results"
)

// ErrNoEngine is returned by Calculate when no calculation service is set.
var ErrNoEngine = errors.New("orchestrator: calculation service is not configured")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithFieldRegistry resolves fields against registry instead of the
// built-in catalog.
func WithFieldRegistry(registry *coil.Registry) Option {
	return func(o *Orchestrator) {
		o.fields = registry
	}
}

// WithEngine sets the remote calculation service.
func WithEngine(service engine.Service) Option {
	return func(o *Orchestrator) {
		o.engine = service
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer, such as a Preset, that rewrites
// resolved forms before decorators run.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run against the form model
// before rendering.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithThemeSelector passes a go-theme selector through to the renderers.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks sets the partials used when a theme does not override
// them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// WithOptionsData overrides the optionsData envelope sent with each job.
func WithOptionsData(options []int) Option {
	return func(o *Orchestrator) {
		o.optionsData = append([]int(nil), options...)
	}
}

// WithResultsPath sets the path results are redirected to.
func WithResultsPath(path string) Option {
	return func(o *Orchestrator) {
		o.resultsPath = path
	}
}

// Orchestrator coordinates the full pipeline from parameter selection to
// rendered results. It applies defaults (vanilla renderer, built-in field
// catalog) while remaining open to dependency injection.
type Orchestrator struct {
	fields          *coil.Registry
	registry        *render.Registry
	engine          engine.Service
	logger          *zap.Logger
	defaultRenderer string
	resultsPath     string
	optionsData     []int
	initialiseErr   error
	decorators      []model.Decorator
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	fixed           coil.ParameterSet
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	if len(o.fixed) > 0 {
		o.decorators = append([]model.Decorator{model.DecoratorFunc(o.hideFixed)}, o.decorators...)
	}
	return o
}

// Fields exposes the field registry in use.
func (o *Orchestrator) Fields() *coil.Registry {
	return o.fields
}

// Renderers exposes the renderer registry in use.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.registry
}

// Theme selects the renderer theme configuration, nil without a selector.
type Theme struct {
	Name    string
	Variant string
}

// FormRequest describes a form render. A zero Mode falls back to
// Monophase; an empty Dimension reads the one stored in Values.
type FormRequest struct {
	Mode          coil.Mode
	Dimension     coil.DimensionChoice
	Values        coil.ParameterSet
	Renderer      string
	Theme         Theme
	RenderOptions render.RenderOptions
}

// FormModel resolves, transforms and decorates the form for req.
func (o *Orchestrator) FormModel(ctx context.Context, req FormRequest) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	values := o.pin(req.Values)
	mode, dimension := o.selection(req.Mode, req.Dimension, values)
	form := o.fields.FormModel(mode, dimension, values)
	if err := o.applyTransformer(ctx, mode, &form); err != nil {
		return model.FormModel{}, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

// Form renders the parameter form for req.
func (o *Orchestrator) Form(ctx context.Context, req FormRequest) ([]byte, error) {
	form, err := o.FormModel(ctx, req)
	if err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.themeConfig(req.Theme)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}
	if opts.Values == nil && req.Values != nil {
		opts.Values = req.Values
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Submission carries the values posted for a calculation.
type Submission struct {
	Mode      coil.Mode
	Dimension coil.DimensionChoice
	Values    coil.ParameterSet
	Driver    *coil.CalculationDriver
}

// Calculation is the outcome of Prepare or Calculate. Body, Raw and
// Presentation are only set once the service answered.
type Calculation struct {
	Mode         coil.Mode
	Dimension    coil.DimensionChoice
	Request      coil.Request
	Validation   validation.SchemaValidationResult
	Body         []byte
	Raw          *results.Raw
	Presentation results.Presentation
	ResultsURL   string
}

// Prepare builds the request payload and validates the submitted values.
// Validation issues are advisory and never block the request.
func (o *Orchestrator) Prepare(sub Submission) (Calculation, error) {
	if err := o.initialiseErr; err != nil {
		return Calculation{}, err
	}
	values := o.pin(sub.Values)
	mode, dimension := o.selection(sub.Mode, sub.Dimension, values)
	driver := sub.Driver
	if driver == nil {
		driver = coil.ParseDriver(values)
	}
	req := o.fields.BuildWithOptions(mode, dimension, values, driver, o.optionsData)
	result := validation.ValidateValues(o.fields, mode, dimension, values)
	if !result.Valid {
		o.logger.Info("submission has validation issues",
			zap.String("mode", mode.String()),
			zap.Int("issues", len(result.Issues)),
		)
	}
	return Calculation{
		Mode:       mode,
		Dimension:  dimension,
		Request:    req,
		Validation: result,
	}, nil
}

// Calculate prepares the request, submits it to the calculation service and
// formats the answer. Service failures are returned wrapped; a body that is
// not a result object still yields a ResultsURL carrying the raw text.
func (o *Orchestrator) Calculate(ctx context.Context, sub Submission) (Calculation, error) {
	if ctx == nil {
		return Calculation{}, errors.New("orchestrator: context is required")
	}
	calc, err := o.Prepare(sub)
	if err != nil {
		return Calculation{}, err
	}
	if o.engine == nil {
		return calc, ErrNoEngine
	}

	body, err := o.engine.StartJob(ctx, calc.Request)
	if err != nil {
		fields := []zap.Field{zap.String("mode", calc.Mode.String()), zap.Error(err)}
		var status *engine.StatusError
		if errors.As(err, &status) {
			fields = append(fields, zap.Int("status", status.Code), zap.ByteString("body", status.Body))
		}
		o.logger.Error("calculation request failed", fields...)
		return calc, fmt.Errorf("orchestrator: start job: %w", err)
	}
	calc.Body = body

	raw, err := results.ParseRaw(body)
	if err != nil {
		o.logger.Warn("calculation returned a non-object body", zap.Error(err))
		calc.ResultsURL = results.TextURL(o.resultsPath, string(body))
		return calc, nil
	}
	calc.Raw = raw
	calc.Presentation = results.Format(raw)
	if url, err := results.ResultsURL(o.resultsPath, raw); err == nil {
		calc.ResultsURL = url
	} else {
		return calc, fmt.Errorf("orchestrator: results url: %w", err)
	}
	o.logger.Debug("calculation finished",
		zap.String("mode", calc.Mode.String()),
		zap.String("outcome", string(calc.Presentation.Outcome.Kind)),
		zap.Int("entries", len(calc.Presentation.NonZero)+len(calc.Presentation.Zero)),
	)
	return calc, nil
}

// ResultsRequest describes a results page render from the encoded result
// parameter.
type ResultsRequest struct {
	Encoded  string
	Renderer string
	Theme    Theme
	Options  render.ResultsOptions
}

// Results decodes req.Encoded and renders it. Text that does not decode is
// rendered as a raw fallback rather than an error.
func (o *Orchestrator) Results(ctx context.Context, req ResultsRequest) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	renderer, err := o.resultsRendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.Options
	if opts.Theme == nil {
		cfg, err := o.themeConfig(req.Theme)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	raw, err := results.DecodeParam(req.Encoded)
	if err != nil {
		o.logger.Warn("malformed result parameter", zap.Error(err))
		opts.RawFallback = req.Encoded
	}

	output, err := renderer.RenderResults(ctx, results.Format(raw), opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render results: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) selection(mode coil.Mode, dimension coil.DimensionChoice, values coil.ParameterSet) (coil.Mode, coil.DimensionChoice) {
	if o.pinned(coil.KeyCalculationType) {
		mode = values.Mode()
	}
	if o.pinned(coil.KeyDimensionType) {
		dimension = values.Dimension()
	}
	if !mode.Known() {
		mode = values.Mode()
	}
	if !mode.Known() {
		mode = coil.ModeMonophase
	}
	if dimension == "" {
		dimension = values.Dimension()
	}
	return mode, dimension
}

// rendererFor resolves an explicit name strictly. Without one it tries the
// configured default, then the registry's own default.
func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	if name != "" {
		renderer, err := o.registry.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return renderer, nil
	}
	if o.registry.Has(o.defaultRenderer) {
		return o.registry.Lookup(o.defaultRenderer)
	}
	renderer, err := o.registry.Lookup("")
	if err != nil {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return renderer, nil
}

func (o *Orchestrator) resultsRendererFor(name string) (render.ResultsRenderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	if name == "" && o.registry.Has(o.defaultRenderer) {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Results(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: results renderer: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) themeConfig(selection Theme) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selected, err := o.themeSelector.Select(strings.TrimSpace(selection.Name), strings.TrimSpace(selection.Variant))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return render.RendererConfig(selected, o.fallbackPartials()), nil
}

func (o *Orchestrator) fallbackPartials() map[string]string {
	if len(o.themeFallbacks) > 0 {
		return o.themeFallbacks
	}
	return vanilla.DefaultPartials()
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	if err := model.ApplyDecorators(form, o.decorators...); err != nil {
		return fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, mode coil.Mode, form *model.FormModel) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, mode, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.fields == nil {
		o.fields = coil.DefaultRegistry()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.resultsPath == "" {
		o.resultsPath = defaultResultsPath
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

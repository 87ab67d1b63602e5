package catalog

import "net/http"

// Component bundles the proxy handler with its options.
type Component struct {
	opts Options
}

// New builds a Component from the defaults plus fns.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the configuration.
func (c *Component) Options() Options {
	return c.opts
}

// Handler returns the proxy handler.
func (c *Component) Handler() http.Handler {
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes mounts the handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", errNilMux
	}
	pattern := joinRoute(basePath, c.opts.RoutePath)
	mux.Handle(pattern, c.Handler())
	return pattern, nil
}

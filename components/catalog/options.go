package catalog

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/pkg/engine"
)

const (
	defaultRoutePath   = "/api/coils"
	defaultMaxBodySize = 1 << 20
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath   string
	MaxBodySize int64
	Guard       GuardFunc
	Service     engine.Service
	Logger      *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:   defaultRoutePath,
		MaxBodySize: defaultMaxBodySize,
		Logger:      zap.NewNop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBodySize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxBodySize(size int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodySize = size
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithService(service engine.Service) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Service = service
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

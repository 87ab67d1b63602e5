package engine

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the production calculation service.
const DefaultBaseURL = "https://systemaircanada.dll-cloud.se/dbm/coils/2.1.4.17/v1"

// APIKeyHeader carries the service credential on StartJob calls.
const APIKeyHeader = "X-API-KEY"

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	// Timeout bounds each call when positive. Zero leaves calls bounded only
	// by the caller's context.
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
	Logger      *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		BaseURL:     DefaultBaseURL,
		UserAgent:   "coilform",
		MaxBodySize: 8 << 20,
	}
}

func newOptions(fns ...Option) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.BaseURL = strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = 8 << 20
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

// WithBaseURL overrides the service root.
func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

// WithAPIKey sets the StartJob credential.
func WithAPIKey(key string) Option {
	return func(o *Options) {
		o.APIKey = key
	}
}

// WithHTTPClient supplies the transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithTimeout bounds every call.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(o *Options) {
		o.UserAgent = agent
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMaxBodySize caps how much of a response is read.
func WithMaxBodySize(size int64) Option {
	return func(o *Options) {
		o.MaxBodySize = size
	}
}

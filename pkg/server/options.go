package server

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/orchestrator"
)

// Option customises a Server.
type Option func(*Server)

// WithOrchestrator sets the orchestrator that renders pages and runs
// calculations.
func WithOrchestrator(o *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if o != nil {
			s.orch = o
		}
	}
}

// WithEngine sets the calculation service used by the JSON proxy routes.
func WithEngine(service engine.Service) Option {
	return func(s *Server) {
		s.engine = service
	}
}

// WithLogger sets the access and error logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer selects the renderer used for HTML pages.
func WithRenderer(name string) Option {
	return func(s *Server) {
		s.renderer = name
	}
}

// WithTheme selects the theme and variant for HTML pages.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.theme = orchestrator.Theme{Name: name, Variant: variant}
	}
}

// WithResultsPath overrides the results page route. It must match the path
// the orchestrator writes into results URLs.
func WithResultsPath(path string) Option {
	return func(s *Server) {
		if path != "" {
			s.resultsPath = path
		}
	}
}

// WithTimeouts sets the read, write and shutdown timeouts used by Run.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
		if shutdown > 0 {
			s.shutdownTimeout = shutdown
		}
	}
}

// WithMaxBodySize caps JSON request bodies.
func WithMaxBodySize(size int64) Option {
	return func(s *Server) {
		if size > 0 {
			s.maxBody = size
		}
	}
}

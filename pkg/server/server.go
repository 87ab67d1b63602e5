package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/components/catalog"
	"github.com/goliatone/go-coilform/pkg/engine"
	"github.com/goliatone/go-coilform/pkg/orchestrator"
	"github.com/goliatone/go-coilform/pkg/renderers/vanilla"
)

const (
	defaultResultsPath     = "/results"
	defaultShutdownTimeout = 5 * time.Second
	defaultMaxBody         = 1 << 20
)

// Server serves the calculator pages and API.
type Server struct {
	orch            *orchestrator.Orchestrator
	engine          engine.Service
	logger          *zap.Logger
	renderer        string
	theme           orchestrator.Theme
	resultsPath     string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	maxBody         int64
}

// New builds a Server. Without an orchestrator one is created around the
// configured engine.
func New(options ...Option) *Server {
	s := &Server{
		logger:          zap.NewNop(),
		resultsPath:     defaultResultsPath,
		shutdownTimeout: defaultShutdownTimeout,
		maxBody:         defaultMaxBody,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.orch == nil {
		s.orch = orchestrator.New(
			orchestrator.WithEngine(s.engine),
			orchestrator.WithLogger(s.logger),
			orchestrator.WithResultsPath(s.resultsPath),
		)
	}
	return s
}

// Handler returns the routed handler wrapped in access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleForm)
	mux.HandleFunc(calculatePath, s.handleCalculate)
	mux.HandleFunc(s.resultsPath, s.handleResults)
	mux.HandleFunc("/api/startJob", s.handleStartJob)
	mux.HandleFunc("/api/fields", s.handleFields)
	mux.HandleFunc("/api/build", s.handleBuild)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))

	// Only fails on a nil mux.
	_, _ = catalog.RegisterRoutes(mux, "/api",
		catalog.WithRoutePath("/coils"),
		catalog.WithService(s.engine),
		catalog.WithLogger(s.logger),
		catalog.WithMaxBodySize(s.maxBody),
	)

	return accessLog(s.logger, mux)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	s.logger.Info("listening", zap.String("addr", listener.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

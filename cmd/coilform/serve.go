package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/pkg/server"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			service := a.engine()
			orch, err := a.orchestrator(service)
			if err != nil {
				return err
			}

			srv := server.New(
				server.WithOrchestrator(orch),
				server.WithEngine(service),
				server.WithLogger(a.logger),
				server.WithRenderer(a.cfg.Form.Renderer),
				server.WithTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant),
				server.WithResultsPath(a.cfg.Server.ResultsPath),
				server.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting coilform",
				zap.String("addr", a.cfg.Server.Addr),
				zap.String("engine", service.BaseURL()),
			)
			return srv.Run(ctx, a.cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

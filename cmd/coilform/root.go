package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/internal/config"
	"github.com/goliatone/go-coilform/pkg/renderers/tui"
)

// app holds state shared by every subcommand once PersistentPreRunE ran.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	// driver replaces the survey prompts, for tests.
	driver tui.PromptDriver
}

func newRootCmd() *cobra.Command {
	a := &app{}
	return a.rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "coilform",
		Short: "Coil calculator forms, requests and results",
		Long: `coilform builds the parameter form for a coil calculation, assembles the
inputsData request for the calculation service and renders its results.

Run "coilform serve" for the web calculator or "coilform calc" for an
interactive terminal session.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := cfg.Logging.Build(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "coilform.yaml", "Path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.serveCmd(),
		a.fieldsCmd(),
		a.formCmd(),
		a.calcCmd(),
		a.coilsCmd(),
	)
	return root
}

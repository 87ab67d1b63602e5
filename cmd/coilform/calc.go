package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/orchestrator"
	"github.com/goliatone/go-coilform/pkg/render"
	"github.com/goliatone/go-coilform/pkg/renderers/tui"
)

func (a *app) calcCmd() *cobra.Command {
	var (
		modeFlag   string
		dryRun     bool
		formatFlag string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Collect parameters interactively and run a calculation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			opts := []tui.Option{tui.WithOutput(out)}
			if formatFlag != "" {
				if !dryRun {
					return errors.New("--format requires --dry-run")
				}
				format, err := tui.ParseOutputFormat(formatFlag)
				if err != nil {
					return err
				}
				opts = append(opts, tui.WithOutputFormat(format))
			}
			if a.driver != nil {
				opts = append(opts, tui.WithPromptDriver(a.driver))
			}
			prompts, err := tui.New(opts...)
			if err != nil {
				return err
			}

			prefill := coil.ParameterSet{}
			if modeFlag != "" {
				mode := coil.ParseMode(modeFlag)
				if !mode.Known() {
					return fmt.Errorf("unknown calculation type %q", modeFlag)
				}
				prefill.Set(coil.KeyCalculationType, float64(mode))
			}

			values, err := prompts.Collect(ctx, prefill)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
			if err != nil {
				return err
			}

			service := a.engine()
			orch, err := a.orchestrator(service)
			if err != nil {
				return err
			}
			sub := orchestrator.Submission{Values: values}

			prepared, err := orch.Prepare(sub)
			if err != nil {
				return err
			}
			for _, issue := range prepared.Validation.Issues {
				fmt.Fprintf(out, "warning: %s\n", issue.Message)
			}
			if dryRun && formatFlag != "" {
				data, err := prompts.Serialize(values)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			if dryRun {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(prepared.Request)
			}
			if len(prepared.Validation.Issues) > 0 {
				proceed, err := prompts.Confirm(ctx, "Submit anyway?", true)
				if errors.Is(err, tui.ErrAborted) || (err == nil && !proceed) {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
				if err != nil {
					return err
				}
			}

			calc, err := orch.Calculate(ctx, sub)
			if err != nil {
				a.logger.Error("calculation failed", zap.Error(err))
				return errors.New("error calculating results")
			}

			fallback := ""
			if calc.Raw == nil {
				fallback = string(calc.Body)
			}
			table, err := prompts.RenderResults(ctx, calc.Presentation, render.ResultsOptions{RawFallback: fallback})
			if err != nil {
				return err
			}
			_, err = out.Write(table)
			return err
		},
	}
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Preselect the calculation type")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the request instead of sending it")
	cmd.Flags().StringVar(&formatFlag, "format", "", "With --dry-run, print the collected values as json, form or pretty")
	return cmd
}

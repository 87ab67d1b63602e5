package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-coilform/pkg/coil"
	"github.com/goliatone/go-coilform/pkg/orchestrator"
	"github.com/goliatone/go-coilform/pkg/render"
)

func (a *app) formCmd() *cobra.Command {
	var (
		modeFlag      string
		dimensionFlag string
		output        string
	)
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Render the HTML form for a calculation type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := coil.ParseMode(modeFlag)
			if !mode.Known() {
				return fmt.Errorf("unknown calculation type %q", modeFlag)
			}
			dimension := coil.ParseDimension(dimensionFlag)

			orch, err := a.orchestrator(nil)
			if err != nil {
				return err
			}
			values := orch.Fields().Defaults()
			values.Set(coil.KeyCalculationType, float64(mode))
			values.SwitchDimension(dimension)

			html, err := orch.Form(cmd.Context(), orchestrator.FormRequest{
				Mode:      mode,
				Dimension: dimension,
				Values:    values,
				Theme:     orchestrator.Theme{Name: a.cfg.Theme.Name, Variant: a.cfg.Theme.Variant},
				RenderOptions: render.RenderOptions{
					Endpoint: "/calculate",
					Hidden: render.MergeHiddenFields(nil,
						render.PreviousDimension(string(dimension)),
						render.PreviousMode(mode.Code()),
					),
				},
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("write form: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "monophase", "Calculation type")
	cmd.Flags().StringVarP(&dimensionFlag, "dimension", "d", "overall", "Dimension pair: overall or coil")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}

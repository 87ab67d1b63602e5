package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-coilform/pkg/coil"
)

func (a *app) fieldsCmd() *cobra.Command {
	var (
		modeFlag      string
		dimensionFlag string
		asJSON        bool
	)
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Print the fields resolved for a calculation type and dimension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := coil.ParseMode(modeFlag)
			if !mode.Known() {
				return fmt.Errorf("unknown calculation type %q", modeFlag)
			}
			specs := coil.Resolve(mode, coil.ParseDimension(dimensionFlag))

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(specs)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tLABEL\tKIND\tUNIT\tDEFAULT")
			for _, spec := range specs {
				def := ""
				if spec.Default != nil {
					def = fmt.Sprint(spec.Default)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", spec.Key, spec.Label, spec.Kind, spec.Unit, def)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "monophase", "Calculation type: monophase, direct-expansion, condenser or 1-3")
	cmd.Flags().StringVarP(&dimensionFlag, "dimension", "d", "overall", "Dimension pair: overall or coil")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the field specs as JSON")
	return cmd
}

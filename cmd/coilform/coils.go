package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) coilsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coils",
		Short: "List the coil catalog of the calculation service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.engine().ListCoils(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch coils: %w", err)
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, body, "", "  "); err != nil {
				pretty.Reset()
				pretty.Write(body)
			}
			pretty.WriteByte('\n')
			_, err = cmd.OutOrStdout().Write(pretty.Bytes())
			return err
		},
	}
}

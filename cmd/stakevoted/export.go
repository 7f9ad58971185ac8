package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"
)

const flagOutput = "output"

// ExportCmd dumps the committed state as JSON.
func ExportCmd(d *daemon) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export state to JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gapp, err := d.openApp()
			if err != nil {
				return err
			}
			exported, err := gapp.ExportAppState()
			if err != nil {
				return err
			}
			bz, err := json.MarshalIndent(exported, "", "  ")
			if err != nil {
				return err
			}
			out, err := cmd.Flags().GetString(flagOutput)
			if err != nil {
				return err
			}
			if out != "" {
				return ioutil.WriteFile(out, bz, 0o644)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
	cmd.Flags().String(flagOutput, "", "write to file instead of stdout")
	return cmd
}

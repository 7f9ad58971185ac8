package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/confio/stakevote/app"
)

const (
	flagBalance   = "balance"
	flagOverwrite = "overwrite"
)

// InitCmd writes the config and genesis files to the home directory.
func InitCmd(d *daemon) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the config and genesis files",
		Long: `Write the config file with the current settings and a default genesis file.

Example:
$ stakevoted init --balance stake1...=10000000ustake --bech32_prefix stake
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := d.cfg.Home
			overwrite, err := cmd.Flags().GetBool(flagOverwrite)
			if err != nil {
				return err
			}
			if _, err := os.Stat(app.GenesisFile(home)); err == nil && !overwrite {
				return fmt.Errorf("genesis file already exists: %s", app.GenesisFile(home))
			}
			balances, err := cmd.Flags().GetStringArray(flagBalance)
			if err != nil {
				return err
			}

			gs := app.NewDefaultGenesisState(app.MakeEncodingConfig().Marshaler)
			for _, b := range balances {
				addr, coins, err := parseBalance(b)
				if err != nil {
					return err
				}
				if err := app.AddGenesisBalance(gs, addr, coins); err != nil {
					return err
				}
			}
			if err := app.WriteConfig(d.cfg); err != nil {
				return err
			}
			doc := app.GenesisDoc{GenesisTime: time.Now().UTC(), AppState: gs}
			if err := app.WriteGenesisFile(home, doc); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", home)
			return err
		},
	}
	cmd.Flags().StringArray(flagBalance, nil, "initial account balance as address=coins, can be repeated")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite an existing genesis file")
	return cmd
}

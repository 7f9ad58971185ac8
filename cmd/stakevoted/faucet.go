package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// FaucetCmd mints new tokens to an account. Local setups only.
func FaucetCmd(d *daemon) *cobra.Command {
	return &cobra.Command{
		Use:   "faucet <address=coins>",
		Short: "Mint coins to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, coins, err := parseBalance(args[0])
			if err != nil {
				return err
			}
			gapp, err := d.openApp()
			if err != nil {
				return err
			}
			if err := gapp.Fund(addr, coins); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "funded %s with %s\n", addr, coins)
			return err
		},
	}
}

package main

import (
	"os"

	"github.com/cosmos/cosmos-sdk/server"

	"github.com/confio/stakevote/app"
)

func main() {
	rootCmd, d := NewRootCmd()

	if err := Execute(rootCmd, d, app.DefaultNodeHome); err != nil {
		switch e := err.(type) {
		case server.ErrorCode:
			os.Exit(e.Code)

		default:
			os.Exit(1)
		}
	}
}

package app

import (
	"encoding/json"

	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	votingtypes "github.com/confio/stakevote/x/voting/types"
)

// ExportedApp is the committed application state as genesis
type ExportedApp struct {
	AppState json.RawMessage `json:"app_state"`
	Height   int64           `json:"height"`
}

// ExportAppState exports the state of the application for a genesis file.
func (app *StakeVoteApp) ExportAppState() (ExportedApp, error) {
	ctx := app.NewContext(true)

	votingState, err := app.votingModule.ExportGenesis(ctx)
	if err != nil {
		return ExportedApp{}, err
	}
	authState, err := app.appCodec.MarshalJSON(authtypes.NewGenesisState(app.accountKeeper.GetParams(ctx), nil))
	if err != nil {
		return ExportedApp{}, err
	}
	bankState, err := app.appCodec.MarshalJSON(app.bankKeeper.ExportGenesis(ctx))
	if err != nil {
		return ExportedApp{}, err
	}
	genState := GenesisState{
		authtypes.ModuleName:   authState,
		banktypes.ModuleName:   bankState,
		votingtypes.ModuleName: votingState,
	}
	appState, err := json.MarshalIndent(genState, "", "  ")
	if err != nil {
		return ExportedApp{}, err
	}
	return ExportedApp{
		AppState: appState,
		Height:   app.LastBlockHeight(),
	}, nil
}

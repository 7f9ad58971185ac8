package app

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"

	votingkeeper "github.com/confio/stakevote/x/voting/keeper"
)

type TestSupport struct {
	t   *testing.T
	app *StakeVoteApp
}

func NewTestSupport(t *testing.T, app *StakeVoteApp) *TestSupport {
	return &TestSupport{t: t, app: app}
}

func (s TestSupport) BankKeeper() bankkeeper.Keeper {
	return s.app.bankKeeper
}

func (s TestSupport) VotingKeeper() votingkeeper.Keeper {
	return s.app.votingKeeper
}

// Context returns a context on the latest state that writes through to the stores.
// Changes are persisted with the next Commit.
func (s TestSupport) Context() sdk.Context {
	return s.app.NewContext(false)
}

func (s TestSupport) Invariants() []string {
	return s.app.invariants.Routes()
}

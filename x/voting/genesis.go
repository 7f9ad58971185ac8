package voting

import (
	"github.com/confio/stakevote/x/voting/keeper"
	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// InitGenesis validates and stores the voting records
func InitGenesis(ctx sdk.Context, k keeper.Keeper, genesisState types.GenesisState) error {
	if err := types.ValidateGenesis(genesisState); err != nil {
		return sdkerrors.Wrap(err, "voting genesis")
	}
	return keeper.InitGenesis(ctx, k, genesisState)
}

// ExportGenesis returns all voting records
func ExportGenesis(ctx sdk.Context, k keeper.Keeper) (*types.GenesisState, error) {
	return keeper.ExportGenesis(ctx, k)
}

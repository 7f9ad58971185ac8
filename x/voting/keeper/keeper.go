package keeper

import (
	"fmt"

	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"
)

type Keeper struct {
	storeKey sdk.StoreKey
	bank     types.BankKeeper
}

func NewKeeper(key sdk.StoreKey, bank types.BankKeeper) Keeper {
	return Keeper{storeKey: key, bank: bank}
}

func ModuleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// now is the block time in unix seconds
func now(ctx sdk.Context) int64 {
	return ctx.BlockTime().Unix()
}

// create stores bz under key only when the key is unused. existsErr is returned otherwise.
func (k Keeper) create(ctx sdk.Context, key, bz []byte, existsErr *sdkerrors.Error) error {
	store := ctx.KVStore(k.storeKey)
	if store.Has(key) {
		return existsErr
	}
	store.Set(key, bz)
	return nil
}

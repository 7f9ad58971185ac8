package keeper

import (
	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// InitializeConfig creates the config singleton with authority as proposal creator.
func (k Keeper) InitializeConfig(ctx sdk.Context, authority sdk.AccAddress, unstakePeriod int64, stakeDenom string) (types.Config, error) {
	config := types.NewConfig(authority, unstakePeriod, stakeDenom)
	if err := config.ValidateBasic(); err != nil {
		return types.Config{}, err
	}
	if err := k.create(ctx, types.ConfigKey, types.MarshalConfig(config), types.ErrAlreadyInitialized); err != nil {
		return types.Config{}, sdkerrors.Wrap(err, "config")
	}
	ModuleLogger(ctx).Info("config initialized", "authority", authority.String(), "unstake_period", unstakePeriod, "denom", stakeDenom)
	return config, nil
}

func (k Keeper) GetConfig(ctx sdk.Context) (types.Config, error) {
	bz := ctx.KVStore(k.storeKey).Get(types.ConfigKey)
	if bz == nil {
		return types.Config{}, sdkerrors.Wrap(types.ErrRecordNotFound, "config")
	}
	return types.UnmarshalConfig(bz)
}

func (k Keeper) HasConfig(ctx sdk.Context) bool {
	return ctx.KVStore(k.storeKey).Has(types.ConfigKey)
}

func (k Keeper) setConfig(ctx sdk.Context, config types.Config) {
	ctx.KVStore(k.storeKey).Set(types.ConfigKey, types.MarshalConfig(config))
}

package keeper

import (
	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// voterVault is the custody capability for a single voter. It moves tokens only
// between the owner and the vault address derived from the owner.
type voterVault struct {
	bank    types.BankKeeper
	owner   sdk.AccAddress
	address sdk.AccAddress
	denom   string
}

func (k Keeper) vault(owner sdk.AccAddress, denom string) voterVault {
	return voterVault{
		bank:    k.bank,
		owner:   owner,
		address: types.VoterVaultAddress(owner),
		denom:   denom,
	}
}

// deposit moves amount from the owner into the vault
func (v voterVault) deposit(ctx sdk.Context, amount uint64) error {
	if err := v.bank.SendCoins(ctx, v.owner, v.address, v.coins(amount)); err != nil {
		return sdkerrors.Wrap(types.ErrCustodyTransferFailed, err.Error())
	}
	return nil
}

// release moves amount from the vault back to the owner
func (v voterVault) release(ctx sdk.Context, amount uint64) error {
	if err := v.bank.SendCoins(ctx, v.address, v.owner, v.coins(amount)); err != nil {
		return sdkerrors.Wrap(types.ErrCustodyTransferFailed, err.Error())
	}
	return nil
}

func (v voterVault) balance(ctx sdk.Context) sdk.Int {
	return v.bank.GetBalance(ctx, v.address, v.denom).Amount
}

func (v voterVault) coins(amount uint64) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(v.denom, sdk.NewIntFromUint64(amount)))
}

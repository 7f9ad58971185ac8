package keeper

import (
	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ types.BankKeeper = BankKeeperMock{}

// BankKeeperMock mocks the custody bank
type BankKeeperMock struct {
	SendCoinsFn  func(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalanceFn func(ctx sdk.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

func (m BankKeeperMock) SendCoins(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if m.SendCoinsFn == nil {
		panic("not expected to be called")
	}
	return m.SendCoinsFn(ctx, fromAddr, toAddr, amt)
}

func (m BankKeeperMock) GetBalance(ctx sdk.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	if m.GetBalanceFn == nil {
		panic("not expected to be called")
	}
	return m.GetBalanceFn(ctx, addr, denom)
}

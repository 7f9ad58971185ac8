package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper is the token custody the voting module moves stake with.
// SendCoins must be atomic: it either moves the full amount or fails without effect.
type BankKeeper interface {
	SendCoins(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx sdk.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

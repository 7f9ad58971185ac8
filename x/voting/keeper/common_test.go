package keeper

import (
	"testing"
	"time"

	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

const myUnstakePeriod = int64(1000)

func setupConfig(t *testing.T, ctx sdk.Context, k Keeper) types.Config {
	t.Helper()
	config, err := k.InitializeConfig(ctx, types.RandomAccAddress(), myUnstakePeriod, types.DefaultStakeDenom)
	require.NoError(t, err)
	return config
}

// setupStakedVoter funds a new account, initializes its voter record and stakes amount
func setupStakedVoter(t *testing.T, ctx sdk.Context, keepers TestKeepers, amount uint64) sdk.AccAddress {
	t.Helper()
	owner := types.RandomAccAddress()
	_, err := keepers.VotingKeeper.InitializeVoter(ctx, owner)
	require.NoError(t, err)
	if amount == 0 {
		return owner
	}
	keepers.Faucet.Fund(ctx, owner, stakeCoin(amount))
	_, err = keepers.VotingKeeper.IncreaseStake(ctx, owner, amount)
	require.NoError(t, err)
	return owner
}

func setupProposal(t *testing.T, ctx sdk.Context, k Keeper, mutators ...func(*ProposalInput)) types.Proposal {
	t.Helper()
	config, err := k.GetConfig(ctx)
	require.NoError(t, err)
	in := ProposalInput{
		QuorumVotes: 100,
		EndingTS:    ctx.BlockTime().Unix() + 86400,
		Points:      10,
		Title:       "Fund the community pool",
		Description: "Allocate tokens to the community pool",
		Options:     []string{"yes", "no", "abstain"},
	}
	for _, m := range mutators {
		m(&in)
	}
	p, err := k.CreateProposal(ctx, config.Authority, in)
	require.NoError(t, err)
	return p
}

func stakeCoin(amount uint64) sdk.Coin {
	return sdk.NewCoin(types.DefaultStakeDenom, sdk.NewIntFromUint64(amount))
}

func atTime(ctx sdk.Context, ts int64) sdk.Context {
	return ctx.WithBlockTime(time.Unix(ts, 0).UTC())
}

func balance(ctx sdk.Context, keepers TestKeepers, addr sdk.AccAddress) uint64 {
	return keepers.BankKeeper.GetBalance(ctx, addr, types.DefaultStakeDenom).Amount.Uint64()
}

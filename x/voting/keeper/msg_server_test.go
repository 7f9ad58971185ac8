package keeper

import (
	"testing"

	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgServerFlow(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	k := keepers.VotingKeeper
	s := NewMsgServerImpl(k)
	myAuthority := types.RandomAccAddress()
	myOwner := types.RandomAccAddress()
	keepers.Faucet.Fund(ctx, myOwner, stakeCoin(10_000_000))
	c := sdk.WrapSDKContext(ctx)

	_, err := s.InitializeConfig(c, types.NewMsgInitializeConfig(myAuthority, myUnstakePeriod, types.DefaultStakeDenom))
	require.NoError(t, err)

	createRsp, err := s.CreateProposal(c, types.MsgCreateProposalFixture(func(m *types.MsgCreateProposal) {
		m.Authority = myAuthority.String()
	}))
	require.NoError(t, err)
	assert.Equal(t, uint16(1), createRsp.ProposalID)
	p, err := k.GetProposal(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(p.Space()), createRsp.Space)

	_, err = s.InitializeVoter(c, types.NewMsgInitializeVoter(myOwner))
	require.NoError(t, err)

	increaseRsp, err := s.IncreaseStake(c, types.NewMsgIncreaseStake(myOwner, 10_000_000))
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), increaseRsp.StakedAmount)

	decreaseRsp, err := s.DecreaseStake(c, types.NewMsgDecreaseStake(myOwner, 100))
	require.NoError(t, err)
	assert.Equal(t, ctx.BlockTime().Unix()+myUnstakePeriod, decreaseRsp.UnstakeCompleteTS)

	cancelRsp, err := s.CancelUnstake(c, types.NewMsgCancelUnstake(myOwner, 40))
	require.NoError(t, err)
	assert.Equal(t, uint64(60), cancelRsp.AmountUnstaking)

	voteCtx := atTime(ctx, ctx.BlockTime().Unix()+500)
	voteRsp, err := s.CastVote(sdk.WrapSDKContext(voteCtx), types.NewMsgCastVote(myOwner, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), voteRsp.Weight)

	withdrawCtx := atTime(ctx, ctx.BlockTime().Unix()+myUnstakePeriod)
	withdrawRsp, err := s.WithdrawStake(sdk.WrapSDKContext(withdrawCtx), types.NewMsgWithdrawStake(myOwner))
	require.NoError(t, err)
	assert.Equal(t, uint64(60), withdrawRsp.Amount)
	assert.Equal(t, uint64(60), balance(ctx, keepers, myOwner))

	var eventTypes []string
	for _, e := range ctx.EventManager().Events() {
		eventTypes = append(eventTypes, e.Type)
	}
	assert.Contains(t, eventTypes, types.EventTypeInitializeConfig)
	assert.Contains(t, eventTypes, types.EventTypeIncreaseStake)
	assert.Contains(t, eventTypes, sdk.EventTypeMessage)
}

func TestMsgServerRejectsInvalidAddress(t *testing.T) {
	ctx, keepers := CreateDefaultTestInput(t)
	s := NewMsgServerImpl(keepers.VotingKeeper)
	_, err := s.IncreaseStake(sdk.WrapSDKContext(ctx), &types.MsgIncreaseStake{Owner: "invalid", Amount: 1})
	require.Error(t, err)
}

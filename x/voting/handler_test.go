package voting

import (
	"context"
	"testing"

	"github.com/confio/stakevote/x/voting/keeper"
	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestHandler(t *testing.T) {
	specs := map[string]struct {
		src       sdk.Msg
		mock      MsgServerMock
		expErr    *sdkerrors.Error
		expData   map[string]uint64
		expEvents []string
	}{
		"MsgInitializeConfig": {
			src: types.MsgInitializeConfigFixture(),
			mock: MsgServerMock{
				InitializeConfigFn: func(ctx context.Context, msg *types.MsgInitializeConfig) (*types.MsgInitializeConfigResponse, error) {
					return &types.MsgInitializeConfigResponse{}, nil
				},
			},
			expData: map[string]uint64{},
		},
		"MsgInitializeConfig with events": {
			src: types.MsgInitializeConfigFixture(),
			mock: MsgServerMock{
				InitializeConfigFn: func(ctx context.Context, msg *types.MsgInitializeConfig) (*types.MsgInitializeConfigResponse, error) {
					sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(sdk.NewEvent("foo"))
					return &types.MsgInitializeConfigResponse{}, nil
				},
			},
			expData:   map[string]uint64{},
			expEvents: []string{"foo"},
		},
		"MsgCreateProposal": {
			src: types.MsgCreateProposalFixture(),
			mock: MsgServerMock{
				CreateProposalFn: func(ctx context.Context, msg *types.MsgCreateProposal) (*types.MsgCreateProposalResponse, error) {
					return &types.MsgCreateProposalResponse{ProposalID: 3, Space: 120}, nil
				},
			},
			expData: map[string]uint64{"proposal_id": 3, "space": 120},
		},
		"MsgCreateProposal error returned": {
			src: types.MsgCreateProposalFixture(),
			mock: MsgServerMock{
				CreateProposalFn: func(ctx context.Context, msg *types.MsgCreateProposal) (*types.MsgCreateProposalResponse, error) {
					return nil, types.ErrInvalidAuthority
				},
			},
			expErr: types.ErrInvalidAuthority,
		},
		"MsgInitializeVoter": {
			src: types.NewMsgInitializeVoter(types.RandomAccAddress()),
			mock: MsgServerMock{
				InitializeVoterFn: func(ctx context.Context, msg *types.MsgInitializeVoter) (*types.MsgInitializeVoterResponse, error) {
					return &types.MsgInitializeVoterResponse{}, nil
				},
			},
			expData: map[string]uint64{},
		},
		"MsgIncreaseStake": {
			src: types.NewMsgIncreaseStake(types.RandomAccAddress(), 1),
			mock: MsgServerMock{
				IncreaseStakeFn: func(ctx context.Context, msg *types.MsgIncreaseStake) (*types.MsgIncreaseStakeResponse, error) {
					return &types.MsgIncreaseStakeResponse{StakedAmount: 11}, nil
				},
			},
			expData: map[string]uint64{"staked_amount": 11},
		},
		"MsgIncreaseStake error returned": {
			src: types.NewMsgIncreaseStake(types.RandomAccAddress(), 1),
			mock: MsgServerMock{
				IncreaseStakeFn: func(ctx context.Context, msg *types.MsgIncreaseStake) (*types.MsgIncreaseStakeResponse, error) {
					return nil, types.ErrCustodyTransferFailed
				},
			},
			expErr: types.ErrCustodyTransferFailed,
		},
		"MsgDecreaseStake": {
			src: types.NewMsgDecreaseStake(types.RandomAccAddress(), 1),
			mock: MsgServerMock{
				DecreaseStakeFn: func(ctx context.Context, msg *types.MsgDecreaseStake) (*types.MsgDecreaseStakeResponse, error) {
					return &types.MsgDecreaseStakeResponse{UnstakeCompleteTS: 1000}, nil
				},
			},
			expData: map[string]uint64{"unstake_complete_ts": 1000},
		},
		"MsgCancelUnstake": {
			src: types.NewMsgCancelUnstake(types.RandomAccAddress(), 1),
			mock: MsgServerMock{
				CancelUnstakeFn: func(ctx context.Context, msg *types.MsgCancelUnstake) (*types.MsgCancelUnstakeResponse, error) {
					return &types.MsgCancelUnstakeResponse{AmountUnstaking: 5, UnstakeCompleteTS: 1000}, nil
				},
			},
			expData: map[string]uint64{"amount_unstaking": 5, "unstake_complete_ts": 1000},
		},
		"MsgCancelUnstake error returned": {
			src: types.NewMsgCancelUnstake(types.RandomAccAddress(), 1),
			mock: MsgServerMock{
				CancelUnstakeFn: func(ctx context.Context, msg *types.MsgCancelUnstake) (*types.MsgCancelUnstakeResponse, error) {
					return nil, types.ErrArithmeticUnderflow
				},
			},
			expErr: types.ErrArithmeticUnderflow,
		},
		"MsgWithdrawStake": {
			src: types.NewMsgWithdrawStake(types.RandomAccAddress()),
			mock: MsgServerMock{
				WithdrawStakeFn: func(ctx context.Context, msg *types.MsgWithdrawStake) (*types.MsgWithdrawStakeResponse, error) {
					return &types.MsgWithdrawStakeResponse{Amount: 60}, nil
				},
			},
			expData: map[string]uint64{"amount": 60},
		},
		"MsgWithdrawStake error returned": {
			src: types.NewMsgWithdrawStake(types.RandomAccAddress()),
			mock: MsgServerMock{
				WithdrawStakeFn: func(ctx context.Context, msg *types.MsgWithdrawStake) (*types.MsgWithdrawStakeResponse, error) {
					return nil, types.ErrUnstakingNotComplete
				},
			},
			expErr: types.ErrUnstakingNotComplete,
		},
		"MsgCastVote": {
			src: types.NewMsgCastVote(types.RandomAccAddress(), 1, 0),
			mock: MsgServerMock{
				CastVoteFn: func(ctx context.Context, msg *types.MsgCastVote) (*types.MsgCastVoteResponse, error) {
					return &types.MsgCastVoteResponse{Weight: 5_000_000}, nil
				},
			},
			expData: map[string]uint64{"weight": 5_000_000},
		},
		"MsgCastVote error returned": {
			src: types.NewMsgCastVote(types.RandomAccAddress(), 1, 0),
			mock: MsgServerMock{
				CastVoteFn: func(ctx context.Context, msg *types.MsgCastVote) (*types.MsgCastVoteResponse, error) {
					return nil, types.ErrAlreadyVoted
				},
			},
			expErr: types.ErrAlreadyVoted,
		},
		"unknown message": {
			src:    &banktypes.MsgSend{},
			expErr: sdkerrors.ErrUnknownRequest,
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			ctx, _ := keeper.CreateDefaultTestInput(t)
			h := newHandler(spec.mock)
			// when
			gotRes, gotErr := h(ctx, spec.src)
			// then
			if spec.expErr != nil {
				require.True(t, spec.expErr.Is(gotErr), "exp %v but got %#+v", spec.expErr, gotErr)
				assert.Nil(t, gotRes)
				return
			}
			require.NoError(t, gotErr)
			require.NotNil(t, gotRes)
			for k, v := range spec.expData {
				assert.Equal(t, v, gjson.GetBytes(gotRes.Data, k).Uint(), k)
			}
			var gotEvents []string
			for _, e := range gotRes.Events {
				gotEvents = append(gotEvents, e.Type)
			}
			assert.Equal(t, spec.expEvents, gotEvents)
		})
	}
}

func TestHandlerDiscardsStateOnError(t *testing.T) {
	ctx, keepers := keeper.CreateDefaultTestInput(t)
	k := keepers.VotingKeeper
	impl := keeper.NewMsgServerImpl(k)
	mock := MsgServerMock{
		InitializeConfigFn: func(ctx context.Context, msg *types.MsgInitializeConfig) (*types.MsgInitializeConfigResponse, error) {
			_, err := impl.InitializeConfig(ctx, msg)
			require.NoError(t, err)
			require.True(t, k.HasConfig(sdk.UnwrapSDKContext(ctx)))
			return nil, types.ErrInvalid
		},
	}
	// when
	_, err := newHandler(mock)(ctx, types.MsgInitializeConfigFixture())
	// then
	require.Error(t, err)
	assert.False(t, k.HasConfig(ctx))

	// and the real handler persists
	res, err := NewHandler(k)(ctx, types.MsgInitializeConfigFixture())
	require.NoError(t, err)
	assert.True(t, k.HasConfig(ctx))
	var gotEvents []string
	for _, e := range res.Events {
		gotEvents = append(gotEvents, e.Type)
	}
	assert.Contains(t, gotEvents, types.EventTypeInitializeConfig)
}

func TestHandlerFullFlow(t *testing.T) {
	ctx, keepers := keeper.CreateDefaultTestInput(t)
	k := keepers.VotingKeeper
	h := NewHandler(k)
	myAuthority := types.RandomAccAddress()
	myOwner := types.RandomAccAddress()
	keepers.Faucet.Fund(ctx, myOwner, sdk.NewInt64Coin(types.DefaultStakeDenom, 6_000_000))

	msgs := []sdk.Msg{
		types.NewMsgInitializeConfig(myAuthority, 1000, types.DefaultStakeDenom),
		types.MsgCreateProposalFixture(func(m *types.MsgCreateProposal) { m.Authority = myAuthority.String() }),
		types.NewMsgInitializeVoter(myOwner),
		types.NewMsgIncreaseStake(myOwner, 6_000_000),
	}
	for i, m := range msgs {
		_, err := h(ctx, m)
		require.NoError(t, err, "msg %d", i)
	}
	// when
	res, err := h(ctx, types.NewMsgCastVote(myOwner, 1, 2))
	// then
	require.NoError(t, err)
	assert.Equal(t, uint64(6_000_000), gjson.GetBytes(res.Data, "weight").Uint())
	p, err := k.GetProposal(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 0, 6_000_000}, p.OptionVotes)

	// and a second vote is rejected without touching the tally
	_, err = h(ctx, types.NewMsgCastVote(myOwner, 1, 0))
	require.True(t, types.ErrAlreadyVoted.Is(err))
	p, err = k.GetProposal(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 0, 6_000_000}, p.OptionVotes)
}

var _ types.MsgServer = MsgServerMock{}

type MsgServerMock struct {
	InitializeConfigFn func(ctx context.Context, msg *types.MsgInitializeConfig) (*types.MsgInitializeConfigResponse, error)
	CreateProposalFn   func(ctx context.Context, msg *types.MsgCreateProposal) (*types.MsgCreateProposalResponse, error)
	InitializeVoterFn  func(ctx context.Context, msg *types.MsgInitializeVoter) (*types.MsgInitializeVoterResponse, error)
	IncreaseStakeFn    func(ctx context.Context, msg *types.MsgIncreaseStake) (*types.MsgIncreaseStakeResponse, error)
	DecreaseStakeFn    func(ctx context.Context, msg *types.MsgDecreaseStake) (*types.MsgDecreaseStakeResponse, error)
	CancelUnstakeFn    func(ctx context.Context, msg *types.MsgCancelUnstake) (*types.MsgCancelUnstakeResponse, error)
	WithdrawStakeFn    func(ctx context.Context, msg *types.MsgWithdrawStake) (*types.MsgWithdrawStakeResponse, error)
	CastVoteFn         func(ctx context.Context, msg *types.MsgCastVote) (*types.MsgCastVoteResponse, error)
}

func (m MsgServerMock) InitializeConfig(ctx context.Context, msg *types.MsgInitializeConfig) (*types.MsgInitializeConfigResponse, error) {
	if m.InitializeConfigFn == nil {
		panic("not expected to be called")
	}
	return m.InitializeConfigFn(ctx, msg)
}

func (m MsgServerMock) CreateProposal(ctx context.Context, msg *types.MsgCreateProposal) (*types.MsgCreateProposalResponse, error) {
	if m.CreateProposalFn == nil {
		panic("not expected to be called")
	}
	return m.CreateProposalFn(ctx, msg)
}

func (m MsgServerMock) InitializeVoter(ctx context.Context, msg *types.MsgInitializeVoter) (*types.MsgInitializeVoterResponse, error) {
	if m.InitializeVoterFn == nil {
		panic("not expected to be called")
	}
	return m.InitializeVoterFn(ctx, msg)
}

func (m MsgServerMock) IncreaseStake(ctx context.Context, msg *types.MsgIncreaseStake) (*types.MsgIncreaseStakeResponse, error) {
	if m.IncreaseStakeFn == nil {
		panic("not expected to be called")
	}
	return m.IncreaseStakeFn(ctx, msg)
}

func (m MsgServerMock) DecreaseStake(ctx context.Context, msg *types.MsgDecreaseStake) (*types.MsgDecreaseStakeResponse, error) {
	if m.DecreaseStakeFn == nil {
		panic("not expected to be called")
	}
	return m.DecreaseStakeFn(ctx, msg)
}

func (m MsgServerMock) CancelUnstake(ctx context.Context, msg *types.MsgCancelUnstake) (*types.MsgCancelUnstakeResponse, error) {
	if m.CancelUnstakeFn == nil {
		panic("not expected to be called")
	}
	return m.CancelUnstakeFn(ctx, msg)
}

func (m MsgServerMock) WithdrawStake(ctx context.Context, msg *types.MsgWithdrawStake) (*types.MsgWithdrawStakeResponse, error) {
	if m.WithdrawStakeFn == nil {
		panic("not expected to be called")
	}
	return m.WithdrawStakeFn(ctx, msg)
}

func (m MsgServerMock) CastVote(ctx context.Context, msg *types.MsgCastVote) (*types.MsgCastVoteResponse, error) {
	if m.CastVoteFn == nil {
		panic("not expected to be called")
	}
	return m.CastVoteFn(ctx, msg)
}

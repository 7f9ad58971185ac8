package keeper

import (
	"context"
	"strconv"

	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

type msgServer struct {
	keeper Keeper
}

// NewMsgServerImpl returns an implementation of the voting MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(k Keeper) types.MsgServer {
	return &msgServer{keeper: k}
}

var _ types.MsgServer = msgServer{}

func (m msgServer) InitializeConfig(goCtx context.Context, msg *types.MsgInitializeConfig) (*types.MsgInitializeConfigResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "authority")
	}
	config, err := m.keeper.InitializeConfig(ctx, authority, msg.UnstakePeriod, msg.StakeDenom)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeInitializeConfig,
			sdk.NewAttribute(types.AttributeKeyAuthority, msg.Authority),
			sdk.NewAttribute(types.AttributeKeyDenom, config.StakeDenom),
		),
		messageEvent(msg.Authority),
	})
	return &types.MsgInitializeConfigResponse{}, nil
}

func (m msgServer) CreateProposal(goCtx context.Context, msg *types.MsgCreateProposal) (*types.MsgCreateProposalResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	authority, err := sdk.AccAddressFromBech32(msg.Authority)
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "authority")
	}
	proposal, err := m.keeper.CreateProposal(ctx, authority, ProposalInput{
		QuorumVotes: msg.QuorumVotes,
		EndingTS:    msg.EndingTS,
		Points:      msg.Points,
		Title:       msg.Title,
		Description: msg.Description,
		Options:     msg.Options,
	})
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeCreateProposal,
			sdk.NewAttribute(types.AttributeKeyAuthority, msg.Authority),
			sdk.NewAttribute(types.AttributeKeyProposalID, strconv.Itoa(int(proposal.ID))),
		),
		messageEvent(msg.Authority),
	})
	return &types.MsgCreateProposalResponse{ProposalID: proposal.ID, Space: uint64(proposal.Space())}, nil
}

func (m msgServer) InitializeVoter(goCtx context.Context, msg *types.MsgInitializeVoter) (*types.MsgInitializeVoterResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "owner")
	}
	if _, err := m.keeper.InitializeVoter(ctx, owner); err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeInitializeVoter,
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
			sdk.NewAttribute(types.AttributeKeyVault, types.VoterVaultAddress(owner).String()),
		),
		messageEvent(msg.Owner),
	})
	return &types.MsgInitializeVoterResponse{}, nil
}

func (m msgServer) IncreaseStake(goCtx context.Context, msg *types.MsgIncreaseStake) (*types.MsgIncreaseStakeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "owner")
	}
	voter, err := m.keeper.IncreaseStake(ctx, owner, msg.Amount)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeIncreaseStake,
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
			sdk.NewAttribute(sdk.AttributeKeyAmount, strconv.FormatUint(msg.Amount, 10)),
		),
		messageEvent(msg.Owner),
	})
	return &types.MsgIncreaseStakeResponse{StakedAmount: voter.StakedAmount}, nil
}

func (m msgServer) DecreaseStake(goCtx context.Context, msg *types.MsgDecreaseStake) (*types.MsgDecreaseStakeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "owner")
	}
	voter, err := m.keeper.DecreaseStake(ctx, owner, msg.Amount)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeDecreaseStake,
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
			sdk.NewAttribute(sdk.AttributeKeyAmount, strconv.FormatUint(msg.Amount, 10)),
			sdk.NewAttribute(types.AttributeKeyUnstakeCompleteTS, strconv.FormatInt(voter.UnstakeCompleteTS, 10)),
		),
		messageEvent(msg.Owner),
	})
	return &types.MsgDecreaseStakeResponse{UnstakeCompleteTS: voter.UnstakeCompleteTS}, nil
}

func (m msgServer) CancelUnstake(goCtx context.Context, msg *types.MsgCancelUnstake) (*types.MsgCancelUnstakeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "owner")
	}
	voter, err := m.keeper.CancelUnstake(ctx, owner, msg.Amount)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeCancelUnstake,
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
			sdk.NewAttribute(sdk.AttributeKeyAmount, strconv.FormatUint(msg.Amount, 10)),
			sdk.NewAttribute(types.AttributeKeyAmountUnstaking, strconv.FormatUint(voter.AmountUnstaking, 10)),
		),
		messageEvent(msg.Owner),
	})
	return &types.MsgCancelUnstakeResponse{
		AmountUnstaking:   voter.AmountUnstaking,
		UnstakeCompleteTS: voter.UnstakeCompleteTS,
	}, nil
}

func (m msgServer) WithdrawStake(goCtx context.Context, msg *types.MsgWithdrawStake) (*types.MsgWithdrawStakeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "owner")
	}
	amount, err := m.keeper.WithdrawStake(ctx, owner)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeWithdrawStake,
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
			sdk.NewAttribute(sdk.AttributeKeyAmount, strconv.FormatUint(amount, 10)),
		),
		messageEvent(msg.Owner),
	})
	return &types.MsgWithdrawStakeResponse{Amount: amount}, nil
}

func (m msgServer) CastVote(goCtx context.Context, msg *types.MsgCastVote) (*types.MsgCastVoteResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	owner, err := sdk.AccAddressFromBech32(msg.Owner)
	if err != nil {
		return nil, sdkerrors.Wrap(sdkerrors.ErrInvalidAddress, "owner")
	}
	vote, err := m.keeper.CastVote(ctx, owner, msg.ProposalID, msg.Option)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeCastVote,
			sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
			sdk.NewAttribute(types.AttributeKeyProposalID, strconv.Itoa(int(msg.ProposalID))),
			sdk.NewAttribute(types.AttributeKeyOption, strconv.Itoa(int(msg.Option))),
			sdk.NewAttribute(types.AttributeKeyWeight, strconv.FormatUint(vote.Weight, 10)),
		),
		messageEvent(msg.Owner),
	})
	return &types.MsgCastVoteResponse{Weight: vote.Weight}, nil
}

func messageEvent(sender string) sdk.Event {
	return sdk.NewEvent(
		sdk.EventTypeMessage,
		sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		sdk.NewAttribute(sdk.AttributeKeySender, sender),
	)
}

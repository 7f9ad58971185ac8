package types

import "context"

// MsgServer is the server API for the voting messages.
type MsgServer interface {
	InitializeConfig(context.Context, *MsgInitializeConfig) (*MsgInitializeConfigResponse, error)
	CreateProposal(context.Context, *MsgCreateProposal) (*MsgCreateProposalResponse, error)
	InitializeVoter(context.Context, *MsgInitializeVoter) (*MsgInitializeVoterResponse, error)
	IncreaseStake(context.Context, *MsgIncreaseStake) (*MsgIncreaseStakeResponse, error)
	DecreaseStake(context.Context, *MsgDecreaseStake) (*MsgDecreaseStakeResponse, error)
	CancelUnstake(context.Context, *MsgCancelUnstake) (*MsgCancelUnstakeResponse, error)
	WithdrawStake(context.Context, *MsgWithdrawStake) (*MsgWithdrawStakeResponse, error)
	CastVote(context.Context, *MsgCastVote) (*MsgCastVoteResponse, error)
}

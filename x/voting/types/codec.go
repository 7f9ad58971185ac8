package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
)

// RegisterLegacyAminoCodec registers the voting messages for amino JSON sign bytes
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgInitializeConfig{}, "voting/MsgInitializeConfig", nil)
	cdc.RegisterConcrete(&MsgCreateProposal{}, "voting/MsgCreateProposal", nil)
	cdc.RegisterConcrete(&MsgInitializeVoter{}, "voting/MsgInitializeVoter", nil)
	cdc.RegisterConcrete(&MsgIncreaseStake{}, "voting/MsgIncreaseStake", nil)
	cdc.RegisterConcrete(&MsgDecreaseStake{}, "voting/MsgDecreaseStake", nil)
	cdc.RegisterConcrete(&MsgCancelUnstake{}, "voting/MsgCancelUnstake", nil)
	cdc.RegisterConcrete(&MsgWithdrawStake{}, "voting/MsgWithdrawStake", nil)
	cdc.RegisterConcrete(&MsgCastVote{}, "voting/MsgCastVote", nil)
}

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc references the global x/voting module codec.
	ModuleCdc = codec.NewAminoCodec(amino)
)

func init() {
	RegisterLegacyAminoCodec(amino)
	cryptocodec.RegisterCrypto(amino)
	amino.Seal()
}

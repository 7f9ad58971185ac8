package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	yaml "gopkg.in/yaml.v2"
)

const (
	TypeMsgInitializeConfig = "initialize_config"
	TypeMsgCreateProposal   = "create_proposal"
	TypeMsgInitializeVoter  = "initialize_voter"
	TypeMsgIncreaseStake    = "increase_stake"
	TypeMsgDecreaseStake    = "decrease_stake"
	TypeMsgCancelUnstake    = "cancel_unstake"
	TypeMsgWithdrawStake    = "withdraw_stake"
	TypeMsgCastVote         = "cast_vote"
)

var (
	_ sdk.Msg = &MsgInitializeConfig{}
	_ sdk.Msg = &MsgCreateProposal{}
	_ sdk.Msg = &MsgInitializeVoter{}
	_ sdk.Msg = &MsgIncreaseStake{}
	_ sdk.Msg = &MsgDecreaseStake{}
	_ sdk.Msg = &MsgCancelUnstake{}
	_ sdk.Msg = &MsgWithdrawStake{}
	_ sdk.Msg = &MsgCastVote{}
)

// MsgInitializeConfig creates the config singleton. The signer becomes the authority.
type MsgInitializeConfig struct {
	Authority     string `json:"authority" yaml:"authority"`
	UnstakePeriod int64  `json:"unstake_period" yaml:"unstake_period"`
	StakeDenom    string `json:"stake_denom" yaml:"stake_denom"`
}

func NewMsgInitializeConfig(authority sdk.AccAddress, unstakePeriod int64, stakeDenom string) *MsgInitializeConfig {
	return &MsgInitializeConfig{Authority: authority.String(), UnstakePeriod: unstakePeriod, StakeDenom: stakeDenom}
}

func (msg MsgInitializeConfig) Route() string { return RouterKey }

func (msg MsgInitializeConfig) Type() string { return TypeMsgInitializeConfig }

func (msg MsgInitializeConfig) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Authority)}
}

func (msg MsgInitializeConfig) GetSignBytes() []byte {
	return mustSignBytes(&msg)
}

func (msg MsgInitializeConfig) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	if msg.UnstakePeriod <= 0 {
		return sdkerrors.Wrap(ErrInvalid, "unstake period must be positive")
	}
	if err := sdk.ValidateDenom(msg.StakeDenom); err != nil {
		return sdkerrors.Wrap(sdkerrors.ErrInvalidCoins, err.Error())
	}
	return nil
}

func (msg *MsgInitializeConfig) Reset()         { *msg = MsgInitializeConfig{} }
func (msg *MsgInitializeConfig) ProtoMessage()  {}
func (msg *MsgInitializeConfig) String() string { return yamlString(msg) }

// MsgCreateProposal opens a new proposal. Only the config authority may send it.
type MsgCreateProposal struct {
	Authority   string   `json:"authority" yaml:"authority"`
	QuorumVotes uint64   `json:"quorum_votes" yaml:"quorum_votes"`
	EndingTS    int64    `json:"ending_ts" yaml:"ending_ts"`
	Points      uint64   `json:"points" yaml:"points"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Options     []string `json:"options" yaml:"options"`
}

func (msg MsgCreateProposal) Route() string { return RouterKey }

func (msg MsgCreateProposal) Type() string { return TypeMsgCreateProposal }

func (msg MsgCreateProposal) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Authority)}
}

func (msg MsgCreateProposal) GetSignBytes() []byte {
	return mustSignBytes(&msg)
}

func (msg MsgCreateProposal) ValidateBasic() error {
	if err := validateAddress("authority", msg.Authority); err != nil {
		return err
	}
	if len(msg.Title) < MinTitleLength {
		return ErrTitleTooShort
	}
	if len(msg.Options) < MinOptions {
		return ErrNotEnoughOptions
	}
	// option indexes are single bytes on the wire
	if len(msg.Options) > 256 {
		return sdkerrors.Wrap(ErrOutOfRange, "too many options")
	}
	return nil
}

func (msg *MsgCreateProposal) Reset()         { *msg = MsgCreateProposal{} }
func (msg *MsgCreateProposal) ProtoMessage()  {}
func (msg *MsgCreateProposal) String() string { return yamlString(msg) }

// MsgInitializeVoter creates the zeroed voter record of the signer.
type MsgInitializeVoter struct {
	Owner string `json:"owner" yaml:"owner"`
}

func NewMsgInitializeVoter(owner sdk.AccAddress) *MsgInitializeVoter {
	return &MsgInitializeVoter{Owner: owner.String()}
}

func (msg MsgInitializeVoter) Route() string { return RouterKey }

func (msg MsgInitializeVoter) Type() string { return TypeMsgInitializeVoter }

func (msg MsgInitializeVoter) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Owner)}
}

func (msg MsgInitializeVoter) GetSignBytes() []byte {
	return mustSignBytes(&msg)
}

func (msg MsgInitializeVoter) ValidateBasic() error {
	return validateAddress("owner", msg.Owner)
}

func (msg *MsgInitializeVoter) Reset()         { *msg = MsgInitializeVoter{} }
func (msg *MsgInitializeVoter) ProtoMessage()  {}
func (msg *MsgInitializeVoter) String() string { return yamlString(msg) }

// MsgIncreaseStake moves tokens of the signer into custody.
type MsgIncreaseStake struct {
	Owner  string `json:"owner" yaml:"owner"`
	Amount uint64 `json:"amount" yaml:"amount"`
}

func NewMsgIncreaseStake(owner sdk.AccAddress, amount uint64) *MsgIncreaseStake {
	return &MsgIncreaseStake{Owner: owner.String(), Amount: amount}
}

func (msg MsgIncreaseStake) Route() string { return RouterKey }

func (msg MsgIncreaseStake) Type() string { return TypeMsgIncreaseStake }

func (msg MsgIncreaseStake) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Owner)}
}

func (msg MsgIncreaseStake) GetSignBytes() []byte {
	return mustSignBytes(&msg)
}

func (msg MsgIncreaseStake) ValidateBasic() error {
	return validateOwnerAmount(msg.Owner, msg.Amount)
}

func (msg *MsgIncreaseStake) Reset()         { *msg = MsgIncreaseStake{} }
func (msg *MsgIncreaseStake) ProtoMessage()  {}
func (msg *MsgIncreaseStake) String() string { return yamlString(msg) }

// MsgDecreaseStake starts or restarts the unstake cooldown for an amount.
type MsgDecreaseStake struct {
	Owner  string `json:"owner" yaml:"owner"`
	Amount uint64 `json:"amount" yaml:"amount"`
}

func NewMsgDecreaseStake(owner sdk.AccAddress, amount uint64) *MsgDecreaseStake {
	return &MsgDecreaseStake{Owner: owner.String(), Amount: amount}
}

func (msg MsgDecreaseStake) Route() string { return RouterKey }

func (msg MsgDecreaseStake) Type() string { return TypeMsgDecreaseStake }

func (msg MsgDecreaseStake) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Owner)}
}

func (msg MsgDecreaseStake) GetSignBytes() []byte {
	return mustSignBytes(&msg)
}

func (msg MsgDecreaseStake) ValidateBasic() error {
	return validateOwnerAmount(msg.Owner, msg.Amount)
}

func (msg *MsgDecreaseStake) Reset()         { *msg = MsgDecreaseStake{} }
func (msg *MsgDecreaseStake) ProtoMessage()  {}
func (msg *MsgDecreaseStake) String() string { return yamlString(msg) }

// MsgCancelUnstake takes back part or all of the amount in cooldown.
// A zero amount is accepted and resolved against the stored state.
type MsgCancelUnstake struct {
	Owner  string `json:"owner" yaml:"owner"`
	Amount uint64 `json:"amount" yaml:"amount"`
}

func NewMsgCancelUnstake(owner sdk.AccAddress, amount uint64) *MsgCancelUnstake {
	return &MsgCancelUnstake{Owner: owner.String(), Amount: amount}
}

func (msg MsgCancelUnstake) Route() string { return RouterKey }

func (msg MsgCancelUnstake) Type() string { return TypeMsgCancelUnstake }

func (msg MsgCancelUnstake) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Owner)}
}

func (msg MsgCancelUnstake) GetSignBytes() []byte {
	return mustSignBytes(&msg)
}

func (msg MsgCancelUnstake) ValidateBasic() error {
	return validateAddress("owner", msg.Owner)
}

func (msg *MsgCancelUnstake) Reset()         { *msg = MsgCancelUnstake{} }
func (msg *MsgCancelUnstake) ProtoMessage()  {}
func (msg *MsgCancelUnstake) String() string { return yamlString(msg) }

// MsgWithdrawStake returns the amount whose cooldown elapsed to the signer.
type MsgWithdrawStake struct {
	Owner string `json:"owner" yaml:"owner"`
}

func NewMsgWithdrawStake(owner sdk.AccAddress) *MsgWithdrawStake {
	return &MsgWithdrawStake{Owner: owner.String()}
}

func (msg MsgWithdrawStake) Route() string { return RouterKey }

func (msg MsgWithdrawStake) Type() string { return TypeMsgWithdrawStake }

func (msg MsgWithdrawStake) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Owner)}
}

func (msg MsgWithdrawStake) GetSignBytes() []byte {
	return mustSignBytes(&msg)
}

func (msg MsgWithdrawStake) ValidateBasic() error {
	return validateAddress("owner", msg.Owner)
}

func (msg *MsgWithdrawStake) Reset()         { *msg = MsgWithdrawStake{} }
func (msg *MsgWithdrawStake) ProtoMessage()  {}
func (msg *MsgWithdrawStake) String() string { return yamlString(msg) }

// MsgCastVote records the single vote of the signer on a proposal.
type MsgCastVote struct {
	Owner      string `json:"owner" yaml:"owner"`
	ProposalID uint16 `json:"proposal_id" yaml:"proposal_id"`
	Option     uint8  `json:"option" yaml:"option"`
}

func NewMsgCastVote(owner sdk.AccAddress, proposalID uint16, option uint8) *MsgCastVote {
	return &MsgCastVote{Owner: owner.String(), ProposalID: proposalID, Option: option}
}

func (msg MsgCastVote) Route() string { return RouterKey }

func (msg MsgCastVote) Type() string { return TypeMsgCastVote }

func (msg MsgCastVote) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{mustAccAddress(msg.Owner)}
}

func (msg MsgCastVote) GetSignBytes() []byte {
	return mustSignBytes(&msg)
}

func (msg MsgCastVote) ValidateBasic() error {
	if err := validateAddress("owner", msg.Owner); err != nil {
		return err
	}
	if msg.ProposalID == 0 {
		return sdkerrors.Wrap(ErrInvalid, "proposal id")
	}
	return nil
}

func (msg *MsgCastVote) Reset()         { *msg = MsgCastVote{} }
func (msg *MsgCastVote) ProtoMessage()  {}
func (msg *MsgCastVote) String() string { return yamlString(msg) }

type MsgInitializeConfigResponse struct{}

type MsgCreateProposalResponse struct {
	ProposalID uint16 `json:"proposal_id"`
	Space      uint64 `json:"space"`
}

type MsgInitializeVoterResponse struct{}

type MsgIncreaseStakeResponse struct {
	StakedAmount uint64 `json:"staked_amount"`
}

type MsgDecreaseStakeResponse struct {
	UnstakeCompleteTS int64 `json:"unstake_complete_ts"`
}

type MsgCancelUnstakeResponse struct {
	AmountUnstaking   uint64 `json:"amount_unstaking"`
	UnstakeCompleteTS int64  `json:"unstake_complete_ts"`
}

type MsgWithdrawStakeResponse struct {
	Amount uint64 `json:"amount"`
}

type MsgCastVoteResponse struct {
	Weight uint64 `json:"weight"`
}

func validateOwnerAmount(owner string, amount uint64) error {
	if err := validateAddress("owner", owner); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}
	return nil
}

func validateAddress(field, bech string) error {
	if _, err := sdk.AccAddressFromBech32(bech); err != nil {
		return sdkerrors.Wrapf(sdkerrors.ErrInvalidAddress, "%s: %s", field, err)
	}
	return nil
}

func mustAccAddress(bech string) sdk.AccAddress {
	addr, err := sdk.AccAddressFromBech32(bech)
	if err != nil {
		panic(err)
	}
	return addr
}

func mustSignBytes(msg sdk.Msg) []byte {
	bz := ModuleCdc.MustMarshalJSON(msg)
	return sdk.MustSortJSON(bz)
}

func yamlString(o interface{}) string {
	out, _ := yaml.Marshal(o)
	return string(out)
}

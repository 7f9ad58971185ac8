package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	yaml "gopkg.in/yaml.v2"
)

const (
	MinTitleLength = 3
	MinOptions     = 2
)

// Config is the singleton holding the global engine parameters.
type Config struct {
	Authority      sdk.AccAddress `json:"authority" yaml:"authority"`
	NextProposalID uint16         `json:"next_proposal_id" yaml:"next_proposal_id"`
	TotalStaked    uint64         `json:"total_staked" yaml:"total_staked"`
	// UnstakePeriod is the cooldown in seconds
	UnstakePeriod int64  `json:"unstake_period" yaml:"unstake_period"`
	StakeDenom    string `json:"stake_denom" yaml:"stake_denom"`
}

// NewConfig returns a fresh config with authority as proposal creator.
func NewConfig(authority sdk.AccAddress, unstakePeriod int64, stakeDenom string) Config {
	return Config{
		Authority:      authority,
		NextProposalID: 1,
		UnstakePeriod:  unstakePeriod,
		StakeDenom:     stakeDenom,
	}
}

func (c Config) ValidateBasic() error {
	if err := sdk.VerifyAddressFormat(c.Authority); err != nil {
		return sdkerrors.Wrapf(sdkerrors.ErrInvalidAddress, "authority: %s", err)
	}
	if c.NextProposalID == 0 {
		return sdkerrors.Wrap(ErrInvalid, "next proposal id must not be 0")
	}
	if c.UnstakePeriod <= 0 {
		return sdkerrors.Wrap(ErrInvalid, "unstake period must be positive")
	}
	if err := sdk.ValidateDenom(c.StakeDenom); err != nil {
		return sdkerrors.Wrap(sdkerrors.ErrInvalidCoins, err.Error())
	}
	return nil
}

func (c Config) String() string {
	out, _ := yaml.Marshal(c)
	return string(out)
}

// Voter is the stake and reward state of a single participant.
type Voter struct {
	Owner        sdk.AccAddress `json:"owner" yaml:"owner"`
	StakedAmount uint64         `json:"staked_amount" yaml:"staked_amount"`
	Points       uint64         `json:"points" yaml:"points"`
	// UnstakeCompleteTS is 0 when not unstaking
	UnstakeCompleteTS int64  `json:"unstake_complete_ts" yaml:"unstake_complete_ts"`
	AmountUnstaking   uint64 `json:"amount_unstaking" yaml:"amount_unstaking"`
}

// NewVoter returns a zeroed voter for owner.
func NewVoter(owner sdk.AccAddress) Voter {
	return Voter{Owner: owner}
}

// IsUnstaking is true when a cooldown is running.
func (v Voter) IsUnstaking() bool {
	return v.AmountUnstaking != 0
}

// SetUnstaking starts or restarts the cooldown.
func (v *Voter) SetUnstaking(completeTS int64, amount uint64) {
	v.UnstakeCompleteTS = completeTS
	v.AmountUnstaking = amount
}

// ResetUnstaking moves the voter back to idle.
func (v *Voter) ResetUnstaking() {
	v.UnstakeCompleteTS = 0
	v.AmountUnstaking = 0
}

func (v Voter) ValidateBasic() error {
	if err := sdk.VerifyAddressFormat(v.Owner); err != nil {
		return sdkerrors.Wrapf(sdkerrors.ErrInvalidAddress, "owner: %s", err)
	}
	if (v.AmountUnstaking == 0) != (v.UnstakeCompleteTS == 0) {
		return sdkerrors.Wrap(ErrInvalid, "unstaking amount and completion time must be set together")
	}
	if v.UnstakeCompleteTS < 0 {
		return sdkerrors.Wrap(ErrInvalid, "unstake complete time")
	}
	if v.AmountUnstaking > v.StakedAmount {
		return sdkerrors.Wrap(ErrInvalid, "unstaking amount exceeds staked amount")
	}
	return nil
}

func (v Voter) String() string {
	out, _ := yaml.Marshal(v)
	return string(out)
}

// Proposal is a multi option governance item with index aligned tallies.
type Proposal struct {
	ID          uint16   `json:"id" yaml:"id"`
	TotalVotes  uint64   `json:"total_votes" yaml:"total_votes"`
	QuorumVotes uint64   `json:"quorum_votes" yaml:"quorum_votes"`
	CreatedTS   int64    `json:"created_ts" yaml:"created_ts"`
	EndingTS    int64    `json:"ending_ts" yaml:"ending_ts"`
	Points      uint64   `json:"points" yaml:"points"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Options     []string `json:"options" yaml:"options"`
	OptionVotes []uint64 `json:"option_votes" yaml:"option_votes"`
}

// Space is the encoded size of the proposal record.
func (p Proposal) Space() int {
	return ProposalSpace(p.Title, p.Description, p.Options)
}

// ProposalSpace computes the record size for the given variable length content:
// discriminator, fixed header, length prefixed strings and options, and the tally list.
func ProposalSpace(title, description string, options []string) int {
	n := discriminatorLen +
		2 + 8 + 8 + 8 + 8 + 8 + 1 +
		4 + len(title) +
		4 + len(description) +
		4
	for _, o := range options {
		n += 4 + len(o)
	}
	return n + 4 + len(options)*8
}

func (p Proposal) ValidateBasic() error {
	if p.ID == 0 {
		return sdkerrors.Wrap(ErrInvalid, "id must not be 0")
	}
	if len(p.Title) < MinTitleLength {
		return ErrTitleTooShort
	}
	if len(p.Options) < MinOptions {
		return ErrNotEnoughOptions
	}
	if len(p.OptionVotes) != len(p.Options) {
		return sdkerrors.Wrap(ErrInvalid, "option votes must align with options")
	}
	return nil
}

func (p Proposal) String() string {
	out, _ := yaml.Marshal(p)
	return string(out)
}

// Vote is the immutable record of a single cast vote.
type Vote struct {
	Voter      sdk.AccAddress `json:"voter" yaml:"voter"`
	ProposalID uint16         `json:"proposal_id" yaml:"proposal_id"`
	Option     uint8          `json:"option" yaml:"option"`
	Weight     uint64         `json:"weight" yaml:"weight"`
	Timestamp  int64          `json:"timestamp" yaml:"timestamp"`
}

func (v Vote) ValidateBasic() error {
	if err := sdk.VerifyAddressFormat(v.Voter); err != nil {
		return sdkerrors.Wrapf(sdkerrors.ErrInvalidAddress, "voter: %s", err)
	}
	if v.ProposalID == 0 {
		return sdkerrors.Wrap(ErrInvalid, "proposal id")
	}
	return nil
}

func (v Vote) String() string {
	out, _ := yaml.Marshal(v)
	return string(out)
}

package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// GenesisState is the voting module state at chain start or export.
type GenesisState struct {
	// Config is nil until initialize_config was executed
	Config    *Config    `json:"config,omitempty" yaml:"config"`
	Voters    []Voter    `json:"voters" yaml:"voters"`
	Proposals []Proposal `json:"proposals" yaml:"proposals"`
	Votes     []Vote     `json:"votes" yaml:"votes"`
}

// DefaultGenesisState default values
func DefaultGenesisState() GenesisState {
	return GenesisState{}
}

func ValidateGenesis(g GenesisState) error {
	if g.Config == nil {
		if len(g.Voters) != 0 || len(g.Proposals) != 0 || len(g.Votes) != 0 {
			return sdkerrors.Wrap(ErrInvalid, "records without config")
		}
		return nil
	}
	if err := g.Config.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "config")
	}

	var totalStaked uint64
	voters := make(map[string]struct{}, len(g.Voters))
	for i, v := range g.Voters {
		if err := v.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "voter %d", i)
		}
		if _, exists := voters[v.Owner.String()]; exists {
			return sdkerrors.Wrapf(ErrInvalid, "duplicate voter %s", v.Owner)
		}
		voters[v.Owner.String()] = struct{}{}
		var err error
		if totalStaked, err = SafeAdd(totalStaked, v.StakedAmount); err != nil {
			return sdkerrors.Wrap(err, "total staked")
		}
	}
	for _, v := range g.Voters {
		if _, exists := voters[VoterVaultAddress(v.Owner).String()]; exists {
			return sdkerrors.Wrapf(ErrInvalid, "vault of %s registered as voter", v.Owner)
		}
	}
	if totalStaked != g.Config.TotalStaked {
		return sdkerrors.Wrapf(ErrInvalid, "total staked %d does not match voter stakes %d", g.Config.TotalStaked, totalStaked)
	}

	proposals := make(map[uint16]Proposal, len(g.Proposals))
	for i, p := range g.Proposals {
		if err := p.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "proposal %d", i)
		}
		if _, exists := proposals[p.ID]; exists {
			return sdkerrors.Wrapf(ErrInvalid, "duplicate proposal %d", p.ID)
		}
		if p.ID >= g.Config.NextProposalID {
			return sdkerrors.Wrapf(ErrInvalid, "proposal id %d not below next proposal id", p.ID)
		}
		proposals[p.ID] = p
	}

	votes := make(map[string]struct{}, len(g.Votes))
	for i, v := range g.Votes {
		if err := v.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "vote %d", i)
		}
		p, ok := proposals[v.ProposalID]
		if !ok {
			return sdkerrors.Wrapf(ErrRecordNotFound, "proposal %d of vote %d", v.ProposalID, i)
		}
		if int(v.Option) >= len(p.Options) {
			return sdkerrors.Wrapf(ErrOutOfRange, "vote %d", i)
		}
		if _, ok := voters[v.Voter.String()]; !ok {
			return sdkerrors.Wrapf(ErrRecordNotFound, "voter %s of vote %d", v.Voter, i)
		}
		key := string(GetVoteKey(v.ProposalID, v.Voter))
		if _, exists := votes[key]; exists {
			return sdkerrors.Wrapf(ErrAlreadyVoted, "vote %d", i)
		}
		votes[key] = struct{}{}
	}
	return nil
}

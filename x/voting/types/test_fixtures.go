package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/tendermint/tendermint/libs/rand"
)

const DefaultStakeDenom = "uvote"

func RandomAccAddress() sdk.AccAddress {
	return rand.Bytes(address.Len)
}

func MsgInitializeConfigFixture(mutators ...func(m *MsgInitializeConfig)) *MsgInitializeConfig {
	r := NewMsgInitializeConfig(RandomAccAddress(), 1000, DefaultStakeDenom)
	for _, m := range mutators {
		m(r)
	}
	return r
}

func MsgCreateProposalFixture(mutators ...func(m *MsgCreateProposal)) *MsgCreateProposal {
	r := &MsgCreateProposal{
		Authority:   RandomAccAddress().String(),
		QuorumVotes: 100,
		EndingTS:    1_700_000_000,
		Points:      10,
		Title:       "Fund the community pool",
		Description: "Allocate tokens to the community pool",
		Options:     []string{"yes", "no", "abstain"},
	}
	for _, m := range mutators {
		m(r)
	}
	return r
}

func ConfigFixture(mutators ...func(c *Config)) Config {
	r := NewConfig(RandomAccAddress(), 1000, DefaultStakeDenom)
	for _, m := range mutators {
		m(&r)
	}
	return r
}

func VoterFixture(mutators ...func(v *Voter)) Voter {
	r := Voter{
		Owner:        RandomAccAddress(),
		StakedAmount: 10_000_000,
		Points:       20,
	}
	for _, m := range mutators {
		m(&r)
	}
	return r
}

func ProposalFixture(mutators ...func(p *Proposal)) Proposal {
	r := Proposal{
		ID:          1,
		QuorumVotes: 100,
		CreatedTS:   1_600_000_000,
		EndingTS:    1_700_000_000,
		Points:      10,
		Title:       "Fund the community pool",
		Description: "Allocate tokens to the community pool",
		Options:     []string{"yes", "no"},
		OptionVotes: []uint64{0, 0},
	}
	for _, m := range mutators {
		m(&r)
	}
	return r
}

func VoteFixture(mutators ...func(v *Vote)) Vote {
	r := Vote{
		Voter:      RandomAccAddress(),
		ProposalID: 1,
		Option:     1,
		Weight:     10_000_000,
		Timestamp:  1_600_000_100,
	}
	for _, m := range mutators {
		m(&r)
	}
	return r
}

// GenesisStateFixture returns a consistent genesis with one voter, one proposal and one vote.
func GenesisStateFixture(mutators ...func(m *GenesisState)) GenesisState {
	voter := VoterFixture()
	config := ConfigFixture(func(c *Config) {
		c.NextProposalID = 2
		c.TotalStaked = voter.StakedAmount
	})
	r := GenesisState{
		Config:    &config,
		Voters:    []Voter{voter},
		Proposals: []Proposal{ProposalFixture(func(p *Proposal) { p.OptionVotes = []uint64{0, voter.StakedAmount} })},
		Votes:     []Vote{VoteFixture(func(v *Vote) { v.Voter = voter.Owner })},
	}
	for _, m := range mutators {
		m(&r)
	}
	return r
}

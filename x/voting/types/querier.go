package types

import sdk "github.com/cosmos/cosmos-sdk/types"

// query endpoints supported by the voting querier
const (
	QueryConfig      = "config"
	QueryVoter       = "voter"
	QueryProposal    = "proposal"
	QueryProposals   = "proposals"
	QueryVote        = "vote"
	QueryVotes       = "votes"
	QueryVotingPower = "voting_power"
)

// VotingPower is the weight a vote of owner would get at the query block time.
type VotingPower struct {
	Owner        sdk.AccAddress `json:"owner" yaml:"owner"`
	StakedAmount uint64         `json:"staked_amount" yaml:"staked_amount"`
	Weight       uint64         `json:"weight" yaml:"weight"`
	Eligible     bool           `json:"eligible" yaml:"eligible"`
	Vault        sdk.AccAddress `json:"vault" yaml:"vault"`
}

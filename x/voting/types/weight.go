package types

import sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

// VoteWeight returns the weight a vote cast at now gets.
// An idle voter votes with the full stake. While unstaking the full stake decays
// linearly towards zero at unstake_complete_ts; the remaining time is floored at zero.
func VoteWeight(voter Voter, unstakePeriod int64, now int64) (uint64, error) {
	if !voter.IsUnstaking() {
		return voter.StakedAmount, nil
	}
	if unstakePeriod <= 0 {
		return 0, sdkerrors.Wrap(ErrInvalid, "unstake period")
	}
	remaining := voter.UnstakeCompleteTS - now
	if remaining <= 0 {
		return 0, nil
	}
	product, err := SafeMul(voter.StakedAmount, uint64(remaining))
	if err != nil {
		return 0, err
	}
	return product / uint64(unstakePeriod), nil
}

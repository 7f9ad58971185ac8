package keeper

import (
	"github.com/confio/stakevote/x/voting/types"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// CastVote records the single vote of owner on a proposal.
// The vote stores the decayed weight while the tally is credited with the undecayed stake.
// total_votes is left untouched.
func (k Keeper) CastVote(ctx sdk.Context, owner sdk.AccAddress, proposalID uint16, option uint8) (types.Vote, error) {
	config, err := k.GetConfig(ctx)
	if err != nil {
		return types.Vote{}, err
	}
	voter, err := k.GetVoter(ctx, owner)
	if err != nil {
		return types.Vote{}, err
	}
	if voter.StakedAmount <= types.MinStakedTokens {
		return types.Vote{}, sdkerrors.Wrapf(types.ErrNoTokensStaked, "staked %d, must exceed %d", voter.StakedAmount, types.MinStakedTokens)
	}
	proposal, err := k.GetProposal(ctx, proposalID)
	if err != nil {
		return types.Vote{}, err
	}
	if int(option) >= len(proposal.OptionVotes) {
		return types.Vote{}, sdkerrors.Wrapf(types.ErrOutOfRange, "option %d of %d", option, len(proposal.OptionVotes))
	}
	weight, err := types.VoteWeight(voter, config.UnstakePeriod, now(ctx))
	if err != nil {
		return types.Vote{}, sdkerrors.Wrap(err, "weight")
	}
	tally, err := types.SafeAdd(proposal.OptionVotes[option], voter.StakedAmount)
	if err != nil {
		return types.Vote{}, sdkerrors.Wrap(err, "option votes")
	}
	points, err := types.SafeAdd(voter.Points, proposal.Points)
	if err != nil {
		return types.Vote{}, sdkerrors.Wrap(err, "points")
	}

	vote := types.Vote{
		Voter:      owner,
		ProposalID: proposalID,
		Option:     option,
		Weight:     weight,
		Timestamp:  now(ctx),
	}
	if err := k.create(ctx, types.GetVoteKey(proposalID, owner), types.MarshalVote(vote), types.ErrAlreadyVoted); err != nil {
		return types.Vote{}, sdkerrors.Wrapf(err, "proposal %d", proposalID)
	}
	proposal.OptionVotes[option] = tally
	voter.Points = points
	k.setProposal(ctx, proposal)
	k.setVoter(ctx, voter)
	ModuleLogger(ctx).Info("vote cast", "owner", owner.String(), "proposal_id", proposalID, "option", option, "weight", weight)
	return vote, nil
}

// VotingPower returns the weight a vote of owner would get at the current block time.
func (k Keeper) VotingPower(ctx sdk.Context, owner sdk.AccAddress) (types.VotingPower, error) {
	config, err := k.GetConfig(ctx)
	if err != nil {
		return types.VotingPower{}, err
	}
	voter, err := k.GetVoter(ctx, owner)
	if err != nil {
		return types.VotingPower{}, err
	}
	weight, err := types.VoteWeight(voter, config.UnstakePeriod, now(ctx))
	if err != nil {
		return types.VotingPower{}, err
	}
	return types.VotingPower{
		Owner:        owner,
		StakedAmount: voter.StakedAmount,
		Weight:       weight,
		Eligible:     voter.StakedAmount > types.MinStakedTokens,
		Vault:        types.VoterVaultAddress(owner),
	}, nil
}

func (k Keeper) GetVote(ctx sdk.Context, proposalID uint16, voter sdk.AccAddress) (types.Vote, error) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetVoteKey(proposalID, voter))
	if bz == nil {
		return types.Vote{}, sdkerrors.Wrapf(types.ErrRecordNotFound, "vote of %s on proposal %d", voter, proposalID)
	}
	return types.UnmarshalVote(bz)
}

func (k Keeper) HasVoted(ctx sdk.Context, proposalID uint16, voter sdk.AccAddress) bool {
	return ctx.KVStore(k.storeKey).Has(types.GetVoteKey(proposalID, voter))
}

// IterateVotes calls cb for every vote on a proposal until cb returns true.
func (k Keeper) IterateVotes(ctx sdk.Context, proposalID uint16, cb func(types.Vote) (stop bool)) error {
	return k.iterateVotes(ctx, types.GetVotesByProposalPrefix(proposalID), cb)
}

// IterateAllVotes calls cb for every vote ordered by proposal until cb returns true.
func (k Keeper) IterateAllVotes(ctx sdk.Context, cb func(types.Vote) (stop bool)) error {
	return k.iterateVotes(ctx, types.VotePrefix, cb)
}

func (k Keeper) iterateVotes(ctx sdk.Context, keyPrefix []byte, cb func(types.Vote) (stop bool)) error {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), keyPrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		vote, err := types.UnmarshalVote(iter.Value())
		if err != nil {
			return sdkerrors.Wrapf(err, "vote key %X", iter.Key())
		}
		if cb(vote) {
			break
		}
	}
	return nil
}

package keeper

import (
	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// InitGenesis writes all records of the genesis state. The state must be validated before.
func InitGenesis(ctx sdk.Context, k Keeper, data types.GenesisState) error {
	if data.Config == nil {
		return nil
	}
	if err := k.create(ctx, types.ConfigKey, types.MarshalConfig(*data.Config), types.ErrAlreadyInitialized); err != nil {
		return sdkerrors.Wrap(err, "config")
	}
	for _, v := range data.Voters {
		if err := k.create(ctx, types.GetVoterKey(v.Owner), types.MarshalVoter(v), types.ErrAlreadyInitialized); err != nil {
			return sdkerrors.Wrapf(err, "voter %s", v.Owner)
		}
		k.setVaultOwner(ctx, v.Owner)
	}
	for _, p := range data.Proposals {
		if err := k.create(ctx, types.GetProposalKey(p.ID), types.MarshalProposal(p), types.ErrAlreadyInitialized); err != nil {
			return sdkerrors.Wrapf(err, "proposal %d", p.ID)
		}
	}
	for _, v := range data.Votes {
		if err := k.create(ctx, types.GetVoteKey(v.ProposalID, v.Voter), types.MarshalVote(v), types.ErrAlreadyVoted); err != nil {
			return sdkerrors.Wrapf(err, "vote of %s on %d", v.Voter, v.ProposalID)
		}
	}
	return nil
}

// ExportGenesis reads all records in key order.
func ExportGenesis(ctx sdk.Context, k Keeper) (*types.GenesisState, error) {
	var genState types.GenesisState
	if !k.HasConfig(ctx) {
		return &genState, nil
	}
	config, err := k.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	genState.Config = &config
	if err := k.IterateVoters(ctx, func(v types.Voter) bool {
		genState.Voters = append(genState.Voters, v)
		return false
	}); err != nil {
		return nil, err
	}
	if err := k.IterateProposals(ctx, func(p types.Proposal) bool {
		genState.Proposals = append(genState.Proposals, p)
		return false
	}); err != nil {
		return nil, err
	}
	if err := k.IterateAllVotes(ctx, func(v types.Vote) bool {
		genState.Votes = append(genState.Votes, v)
		return false
	}); err != nil {
		return nil, err
	}
	return &genState, nil
}

package keeper

import (
	"math"

	"github.com/confio/stakevote/x/voting/types"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ProposalInput is the caller supplied content of a new proposal.
type ProposalInput struct {
	QuorumVotes uint64
	EndingTS    int64
	Points      uint64
	Title       string
	Description string
	Options     []string
}

// CreateProposal opens a proposal under the next id. Only the config authority may create proposals.
// quorum and ending time are stored but not enforced.
func (k Keeper) CreateProposal(ctx sdk.Context, authority sdk.AccAddress, in ProposalInput) (types.Proposal, error) {
	config, err := k.GetConfig(ctx)
	if err != nil {
		return types.Proposal{}, err
	}
	if !config.Authority.Equals(authority) {
		return types.Proposal{}, types.ErrInvalidAuthority
	}
	if len(in.Title) < types.MinTitleLength {
		return types.Proposal{}, types.ErrTitleTooShort
	}
	if len(in.Options) < types.MinOptions {
		return types.Proposal{}, types.ErrNotEnoughOptions
	}
	if len(in.Options) > math.MaxUint8+1 {
		return types.Proposal{}, sdkerrors.Wrap(types.ErrOutOfRange, "too many options")
	}
	if config.NextProposalID == math.MaxUint16 {
		return types.Proposal{}, sdkerrors.Wrap(types.ErrArithmeticOverflow, "proposal id")
	}

	proposal := types.Proposal{
		ID:          config.NextProposalID,
		QuorumVotes: in.QuorumVotes,
		CreatedTS:   now(ctx),
		EndingTS:    in.EndingTS,
		Points:      in.Points,
		Title:       in.Title,
		Description: in.Description,
		Options:     append([]string{}, in.Options...),
		OptionVotes: make([]uint64, len(in.Options)),
	}
	if err := k.create(ctx, types.GetProposalKey(proposal.ID), types.MarshalProposal(proposal), types.ErrAlreadyInitialized); err != nil {
		return types.Proposal{}, sdkerrors.Wrapf(err, "proposal %d", proposal.ID)
	}
	config.NextProposalID++
	k.setConfig(ctx, config)
	ModuleLogger(ctx).Info("proposal created", "proposal_id", proposal.ID, "options", len(proposal.Options), "space", proposal.Space())
	return proposal, nil
}

func (k Keeper) GetProposal(ctx sdk.Context, id uint16) (types.Proposal, error) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetProposalKey(id))
	if bz == nil {
		return types.Proposal{}, sdkerrors.Wrapf(types.ErrRecordNotFound, "proposal %d", id)
	}
	return types.UnmarshalProposal(bz)
}

func (k Keeper) setProposal(ctx sdk.Context, proposal types.Proposal) {
	ctx.KVStore(k.storeKey).Set(types.GetProposalKey(proposal.ID), types.MarshalProposal(proposal))
}

// IterateProposals calls cb for every proposal in id order until cb returns true.
func (k Keeper) IterateProposals(ctx sdk.Context, cb func(types.Proposal) (stop bool)) error {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.ProposalPrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		proposal, err := types.UnmarshalProposal(iter.Value())
		if err != nil {
			return sdkerrors.Wrapf(err, "proposal key %X", iter.Key())
		}
		if cb(proposal) {
			break
		}
	}
	return nil
}

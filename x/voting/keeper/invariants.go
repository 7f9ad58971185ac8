package keeper

import (
	"fmt"

	"github.com/confio/stakevote/x/voting/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInvariants registers all voting invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-staked", TotalStakedInvariant(k))
	ir.RegisterRoute(types.ModuleName, "voter-unstaking", VoterUnstakingInvariant(k))
	ir.RegisterRoute(types.ModuleName, "proposal-tallies", ProposalTalliesInvariant(k))
}

// AllInvariants runs all invariants of the voting module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{
			TotalStakedInvariant(k),
			VoterUnstakingInvariant(k),
			ProposalTalliesInvariant(k),
		} {
			if res, stop := inv(ctx); stop {
				return res, stop
			}
		}
		return "", false
	}
}

// TotalStakedInvariant checks that the config total equals the sum of all voter stakes
// and that the voter vaults hold at least that many tokens.
func TotalStakedInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if !k.HasConfig(ctx) {
			return sdk.FormatInvariant(types.ModuleName, "total-staked", "no config"), false
		}
		config, err := k.GetConfig(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "total-staked", err.Error()), true
		}
		var (
			sum    uint64
			sumErr error
			vaults = sdk.ZeroInt()
			broken bool
			msg    string
		)
		err = k.IterateVoters(ctx, func(v types.Voter) bool {
			if sum, sumErr = types.SafeAdd(sum, v.StakedAmount); sumErr != nil {
				return true
			}
			if k.bank != nil {
				vaults = vaults.Add(k.vault(v.Owner, config.StakeDenom).balance(ctx))
			}
			return false
		})
		switch {
		case err != nil:
			broken, msg = true, err.Error()
		case sumErr != nil:
			broken, msg = true, sumErr.Error()
		case sum != config.TotalStaked:
			broken, msg = true, fmt.Sprintf("total staked %d, sum of voter stakes %d", config.TotalStaked, sum)
		case k.bank != nil && vaults.LT(sdk.NewIntFromUint64(config.TotalStaked)):
			broken, msg = true, fmt.Sprintf("total staked %d, vault balances %s", config.TotalStaked, vaults)
		}
		return sdk.FormatInvariant(types.ModuleName, "total-staked", msg), broken
	}
}

// VoterUnstakingInvariant checks the unstaking fields of every voter.
func VoterUnstakingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken bool
			msg    string
		)
		err := k.IterateVoters(ctx, func(v types.Voter) bool {
			if err := v.ValidateBasic(); err != nil {
				broken, msg = true, fmt.Sprintf("voter %s: %s", v.Owner, err)
			}
			return broken
		})
		if err != nil {
			broken, msg = true, err.Error()
		}
		return sdk.FormatInvariant(types.ModuleName, "voter-unstaking", msg), broken
	}
}

// ProposalTalliesInvariant checks that tallies align with options and ids are below the counter.
func ProposalTalliesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if !k.HasConfig(ctx) {
			return sdk.FormatInvariant(types.ModuleName, "proposal-tallies", "no config"), false
		}
		config, err := k.GetConfig(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "proposal-tallies", err.Error()), true
		}
		var (
			broken bool
			msg    string
		)
		err = k.IterateProposals(ctx, func(p types.Proposal) bool {
			switch {
			case len(p.OptionVotes) != len(p.Options):
				broken, msg = true, fmt.Sprintf("proposal %d: %d tallies for %d options", p.ID, len(p.OptionVotes), len(p.Options))
			case p.ID >= config.NextProposalID:
				broken, msg = true, fmt.Sprintf("proposal %d: not below next id %d", p.ID, config.NextProposalID)
			}
			return broken
		})
		if err != nil {
			broken, msg = true, err.Error()
		}
		return sdk.FormatInvariant(types.ModuleName, "proposal-tallies", msg), broken
	}
}

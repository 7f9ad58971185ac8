package keeper

import (
	"github.com/confio/stakevote/x/voting/types"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// InitializeVoter creates the zeroed voter record of owner.
func (k Keeper) InitializeVoter(ctx sdk.Context, owner sdk.AccAddress) (types.Voter, error) {
	voter := types.NewVoter(owner)
	if err := voter.ValidateBasic(); err != nil {
		return types.Voter{}, err
	}
	if k.isVault(ctx, owner) {
		return types.Voter{}, sdkerrors.Wrapf(types.ErrInvalid, "owner %s is a voter vault", owner)
	}
	if err := k.create(ctx, types.GetVoterKey(owner), types.MarshalVoter(voter), types.ErrAlreadyInitialized); err != nil {
		return types.Voter{}, sdkerrors.Wrap(err, "voter")
	}
	k.setVaultOwner(ctx, owner)
	ModuleLogger(ctx).Debug("voter initialized", "owner", owner.String())
	return voter, nil
}

// IncreaseStake moves amount of the stake token from owner into custody and credits the voter.
func (k Keeper) IncreaseStake(ctx sdk.Context, owner sdk.AccAddress, amount uint64) (types.Voter, error) {
	if amount == 0 {
		return types.Voter{}, types.ErrInvalidAmount
	}
	config, err := k.GetConfig(ctx)
	if err != nil {
		return types.Voter{}, err
	}
	voter, err := k.GetVoter(ctx, owner)
	if err != nil {
		return types.Voter{}, err
	}
	staked, err := types.SafeAdd(voter.StakedAmount, amount)
	if err != nil {
		return types.Voter{}, sdkerrors.Wrap(err, "staked amount")
	}
	total, err := types.SafeAdd(config.TotalStaked, amount)
	if err != nil {
		return types.Voter{}, sdkerrors.Wrap(err, "total staked")
	}
	if err := k.vault(owner, config.StakeDenom).deposit(ctx, amount); err != nil {
		return types.Voter{}, err
	}

	voter.StakedAmount = staked
	config.TotalStaked = total
	k.setVoter(ctx, voter)
	k.setConfig(ctx, config)
	ModuleLogger(ctx).Info("stake increased", "owner", owner.String(), "amount", amount, "staked", staked)
	return voter, nil
}

// DecreaseStake starts the cooldown for amount. A running cooldown is replaced, not extended.
// No tokens are moved before WithdrawStake.
func (k Keeper) DecreaseStake(ctx sdk.Context, owner sdk.AccAddress, amount uint64) (types.Voter, error) {
	if amount == 0 {
		return types.Voter{}, types.ErrInvalidAmount
	}
	config, err := k.GetConfig(ctx)
	if err != nil {
		return types.Voter{}, err
	}
	voter, err := k.GetVoter(ctx, owner)
	if err != nil {
		return types.Voter{}, err
	}
	if amount > voter.StakedAmount {
		return types.Voter{}, sdkerrors.Wrapf(types.ErrInvalidAmount, "exceeds staked amount %d", voter.StakedAmount)
	}
	completeTS, err := types.SafeAddTime(now(ctx), config.UnstakePeriod)
	if err != nil {
		return types.Voter{}, sdkerrors.Wrap(err, "unstake complete time")
	}

	voter.SetUnstaking(completeTS, amount)
	k.setVoter(ctx, voter)
	ModuleLogger(ctx).Info("unstake started", "owner", owner.String(), "amount", amount, "complete_ts", completeTS)
	return voter, nil
}

// CancelUnstake takes amount out of the cooldown. The voter becomes idle when nothing remains,
// otherwise the cooldown restarts for the remainder.
func (k Keeper) CancelUnstake(ctx sdk.Context, owner sdk.AccAddress, amount uint64) (types.Voter, error) {
	config, err := k.GetConfig(ctx)
	if err != nil {
		return types.Voter{}, err
	}
	voter, err := k.GetVoter(ctx, owner)
	if err != nil {
		return types.Voter{}, err
	}
	remaining, err := types.SafeSub(voter.AmountUnstaking, amount)
	if err != nil {
		return types.Voter{}, sdkerrors.Wrapf(err, "cancel %d of %d unstaking", amount, voter.AmountUnstaking)
	}
	if remaining == 0 {
		voter.ResetUnstaking()
	} else {
		completeTS, err := types.SafeAddTime(now(ctx), config.UnstakePeriod)
		if err != nil {
			return types.Voter{}, sdkerrors.Wrap(err, "unstake complete time")
		}
		voter.SetUnstaking(completeTS, remaining)
	}
	k.setVoter(ctx, voter)
	ModuleLogger(ctx).Info("unstake cancelled", "owner", owner.String(), "amount", amount, "remaining", remaining)
	return voter, nil
}

// WithdrawStake releases the amount whose cooldown elapsed back to the owner.
func (k Keeper) WithdrawStake(ctx sdk.Context, owner sdk.AccAddress) (uint64, error) {
	config, err := k.GetConfig(ctx)
	if err != nil {
		return 0, err
	}
	voter, err := k.GetVoter(ctx, owner)
	if err != nil {
		return 0, err
	}
	if !voter.IsUnstaking() {
		return 0, sdkerrors.Wrap(types.ErrInvalidAmount, "nothing to withdraw")
	}
	if now(ctx) < voter.UnstakeCompleteTS {
		return 0, sdkerrors.Wrapf(types.ErrUnstakingNotComplete, "complete at %d", voter.UnstakeCompleteTS)
	}
	amount := voter.AmountUnstaking
	total, err := types.SafeSub(config.TotalStaked, amount)
	if err != nil {
		return 0, sdkerrors.Wrap(err, "total staked")
	}
	staked, err := types.SafeSub(voter.StakedAmount, amount)
	if err != nil {
		return 0, sdkerrors.Wrap(err, "staked amount")
	}
	if err := k.vault(owner, config.StakeDenom).release(ctx, amount); err != nil {
		return 0, err
	}

	config.TotalStaked = total
	voter.StakedAmount = staked
	voter.ResetUnstaking()
	k.setConfig(ctx, config)
	k.setVoter(ctx, voter)
	ModuleLogger(ctx).Info("stake withdrawn", "owner", owner.String(), "amount", amount, "staked", staked)
	return amount, nil
}

func (k Keeper) GetVoter(ctx sdk.Context, owner sdk.AccAddress) (types.Voter, error) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetVoterKey(owner))
	if bz == nil {
		return types.Voter{}, sdkerrors.Wrapf(types.ErrRecordNotFound, "voter %s", owner)
	}
	return types.UnmarshalVoter(bz)
}

// setVaultOwner indexes the vault of owner so that it can not register as a voter itself
func (k Keeper) setVaultOwner(ctx sdk.Context, owner sdk.AccAddress) {
	ctx.KVStore(k.storeKey).Set(types.GetVaultKey(types.VoterVaultAddress(owner)), owner)
}

func (k Keeper) isVault(ctx sdk.Context, addr sdk.AccAddress) bool {
	return ctx.KVStore(k.storeKey).Has(types.GetVaultKey(addr))
}

func (k Keeper) setVoter(ctx sdk.Context, voter types.Voter) {
	ctx.KVStore(k.storeKey).Set(types.GetVoterKey(voter.Owner), types.MarshalVoter(voter))
}

// IterateVoters calls cb for every voter in key order until cb returns true.
func (k Keeper) IterateVoters(ctx sdk.Context, cb func(types.Voter) (stop bool)) error {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.VoterPrefix)
	iter := store.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		voter, err := types.UnmarshalVoter(iter.Value())
		if err != nil {
			return sdkerrors.Wrapf(err, "voter key %X", iter.Key())
		}
		if cb(voter) {
			break
		}
	}
	return nil
}

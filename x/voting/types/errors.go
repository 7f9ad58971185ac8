package types

import sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

var (
	ErrAlreadyInitialized    = sdkerrors.Register(ModuleName, 2, "already initialized")
	ErrInvalidAuthority      = sdkerrors.Register(ModuleName, 3, "authority does not match the one in config")
	ErrTitleTooShort         = sdkerrors.Register(ModuleName, 4, "title must be at least 3 characters long")
	ErrNotEnoughOptions      = sdkerrors.Register(ModuleName, 5, "at least 2 options are required")
	ErrInvalidAmount         = sdkerrors.Register(ModuleName, 6, "stake amount must be greater than 0")
	ErrNoTokensStaked        = sdkerrors.Register(ModuleName, 7, "not enough tokens staked to cast a vote")
	ErrUnstakingNotComplete  = sdkerrors.Register(ModuleName, 8, "stake can only be withdrawn after the unstake period")
	ErrAlreadyVoted          = sdkerrors.Register(ModuleName, 9, "already voted")
	ErrArithmeticOverflow    = sdkerrors.Register(ModuleName, 10, "arithmetic overflow")
	ErrArithmeticUnderflow   = sdkerrors.Register(ModuleName, 11, "arithmetic underflow")
	ErrRecordNotFound        = sdkerrors.Register(ModuleName, 12, "record not found")
	ErrOutOfRange            = sdkerrors.Register(ModuleName, 13, "option out of range")
	ErrCustodyTransferFailed = sdkerrors.Register(ModuleName, 14, "custody transfer failed")
	ErrInvalid               = sdkerrors.Register(ModuleName, 15, "invalid")
	ErrCorruptRecord         = sdkerrors.Register(ModuleName, 16, "corrupt record")
)

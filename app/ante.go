package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// NewAnteHandler returns the checks that run before a message reaches its module:
// stateless validation, a per message gas limit and the rejection of module
// account signers.
func NewAnteHandler(maxGasPerMsg uint64, moduleAccounts map[string]bool) sdk.AnteHandler {
	var gasLimit *sdk.Gas
	if maxGasPerMsg != 0 {
		gasLimit = &maxGasPerMsg
	}
	return sdk.ChainAnteDecorators(
		NewLimitGasDecorator(gasLimit), // outermost so that all following reads are metered
		ValidateBasicDecorator{},
		NewRejectModuleSignerDecorator(moduleAccounts),
	)
}

// msgTx wraps a single message so that it can pass the ante handler chain
type msgTx struct {
	msg sdk.Msg
}

var _ sdk.Tx = msgTx{}

func (t msgTx) GetMsgs() []sdk.Msg {
	return []sdk.Msg{t.msg}
}

func (t msgTx) ValidateBasic() error {
	if t.msg == nil {
		return sdkerrors.Wrap(sdkerrors.ErrInvalidRequest, "empty message")
	}
	return t.msg.ValidateBasic()
}

// ValidateBasicDecorator runs the stateless message checks
type ValidateBasicDecorator struct{}

func (ValidateBasicDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	if err := tx.ValidateBasic(); err != nil {
		return ctx, err
	}
	return next(ctx, tx, simulate)
}

// RejectModuleSignerDecorator prevents messages signed by module accounts. Signatures are not
// verified locally, so a module address as sender could move module funds. Voter vaults are
// derived per owner and rejected by the voting keeper instead.
type RejectModuleSignerDecorator struct {
	moduleAccounts map[string]bool
}

func NewRejectModuleSignerDecorator(moduleAccounts map[string]bool) RejectModuleSignerDecorator {
	return RejectModuleSignerDecorator{moduleAccounts: moduleAccounts}
}

func (d RejectModuleSignerDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	for _, msg := range tx.GetMsgs() {
		for _, s := range msg.GetSigners() {
			if d.moduleAccounts[s.String()] {
				return ctx, sdkerrors.Wrapf(sdkerrors.ErrUnauthorized, "module account %s can not sign", s)
			}
		}
	}
	return next(ctx, tx, simulate)
}

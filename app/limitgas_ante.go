package app

import sdk "github.com/cosmos/cosmos-sdk/types"

type LimitGasDecorator struct {
	gasLimit *sdk.Gas
}

// NewLimitGasDecorator constructor accepts nil value to fallback to an infinite gas meter
func NewLimitGasDecorator(gasLimit *sdk.Gas) *LimitGasDecorator {
	return &LimitGasDecorator{gasLimit: gasLimit}
}

func (d LimitGasDecorator) AnteHandle(ctx sdk.Context, tx sdk.Tx, simulate bool, next sdk.AnteHandler) (sdk.Context, error) {
	if d.gasLimit == nil {
		return next(ctx.WithGasMeter(sdk.NewInfiniteGasMeter()), tx, simulate)
	}
	// exceeding the limit panics with sdk.ErrorOutOfGas, recovered by the caller
	return next(ctx.WithGasMeter(sdk.NewGasMeter(*d.gasLimit)), tx, simulate)
}

package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const codespace = "stakevote"

// ErrInvariantBroken is returned when a message would leave the state inconsistent
var ErrInvariantBroken = sdkerrors.Register(codespace, 2, "invariant broken")

var _ sdk.InvariantRegistry = &InvariantRegistry{}

type invariantRoute struct {
	moduleName string
	route      string
	invariant  sdk.Invariant
}

// InvariantRegistry collects module invariants. They are asserted after every
// delivered message.
type InvariantRegistry struct {
	routes []invariantRoute
}

func NewInvariantRegistry() *InvariantRegistry {
	return &InvariantRegistry{}
}

func (r *InvariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{moduleName: moduleName, route: route, invariant: invar})
}

// Routes returns the registered routes as module/route
func (r *InvariantRegistry) Routes() []string {
	res := make([]string, len(r.routes))
	for i, v := range r.routes {
		res[i] = v.moduleName + "/" + v.route
	}
	return res
}

// Assert runs all invariants and fails on the first broken one
func (r *InvariantRegistry) Assert(ctx sdk.Context) error {
	for _, v := range r.routes {
		if msg, broken := v.invariant(ctx); broken {
			return sdkerrors.Wrapf(ErrInvariantBroken, "%s/%s: %s", v.moduleName, v.route, msg)
		}
	}
	return nil
}

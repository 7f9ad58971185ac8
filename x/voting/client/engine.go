package client

import (
	"context"
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
)

// Engine executes voting messages and queries against a local state.
type Engine interface {
	// Deliver runs a single message and persists the result on success.
	Deliver(msg sdk.Msg) (*sdk.Result, error)
	// Query runs a read only request on the module querier.
	Query(path []string) ([]byte, error)
}

// EngineLoader opens the engine for the given command. It is invoked lazily
// so that commands can fail fast on argument errors without touching the store.
type EngineLoader func(cmd *cobra.Command) (Engine, error)

type engineLoaderKey struct{}

// ErrNoEngine is returned when the command context carries no engine loader.
var ErrNoEngine = errors.New("no voting engine configured")

// WithEngineLoader stores the loader in the context passed to cobra's ExecuteContext.
func WithEngineLoader(ctx context.Context, l EngineLoader) context.Context {
	return context.WithValue(ctx, engineLoaderKey{}, l)
}

// GetEngine returns the engine for the command.
func GetEngine(cmd *cobra.Command) (Engine, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, ErrNoEngine
	}
	l, ok := ctx.Value(engineLoaderKey{}).(EngineLoader)
	if !ok || l == nil {
		return nil, ErrNoEngine
	}
	return l(cmd)
}

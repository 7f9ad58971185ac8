package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/store"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	"github.com/cosmos/cosmos-sdk/x/auth/legacy/legacytx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	paramstypes "github.com/cosmos/cosmos-sdk/x/params/types"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	"github.com/confio/stakevote/x/voting"
	votingclient "github.com/confio/stakevote/x/voting/client"
	votingkeeper "github.com/confio/stakevote/x/voting/keeper"
	votingtypes "github.com/confio/stakevote/x/voting/types"
)

const (
	appName = "StakeVote"

	// FaucetAccountName is the module account that mints the funds of Fund
	FaucetAccountName = "faucet"
)

var (
	// DefaultNodeHome default home directories for the application daemon
	DefaultNodeHome string

	// module account permissions
	maccPerms = map[string][]string{
		FaucetAccountName: {authtypes.Minter},
	}

	_ votingclient.Engine = &StakeVoteApp{}
)

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".stakevoted")
}

// StakeVoteApp hosts the voting module on top of auth, bank and params.
// Every delivered message is committed as a new store version.
type StakeVoteApp struct {
	logger      log.Logger
	cms         storetypes.CommitMultiStore
	legacyAmino *codec.LegacyAmino
	appCodec    codec.Codec

	// keys to access the substores
	keys  map[string]*sdk.KVStoreKey
	tkeys map[string]*sdk.TransientStoreKey

	// keepers
	accountKeeper authkeeper.AccountKeeper
	bankKeeper    bankkeeper.Keeper
	paramsKeeper  paramskeeper.Keeper
	votingKeeper  votingkeeper.Keeper

	votingModule voting.AppModule
	router       sdk.Router
	queryRouter  sdk.QueryRouter
	invariants   *InvariantRegistry
	anteHandler  sdk.AnteHandler

	header tmproto.Header
}

// NewStakeVoteApp returns a reference to an initialized StakeVoteApp.
func NewStakeVoteApp(logger log.Logger, db dbm.DB, maxGasPerMsg uint64) (*StakeVoteApp, error) {
	encodingConfig := MakeEncodingConfig()
	appCodec, legacyAmino := encodingConfig.Marshaler, encodingConfig.Amino

	keys := sdk.NewKVStoreKeys(
		authtypes.StoreKey, banktypes.StoreKey, paramstypes.StoreKey, votingtypes.StoreKey,
	)
	tkeys := sdk.NewTransientStoreKeys(paramstypes.TStoreKey)

	app := &StakeVoteApp{
		logger:      logger.With("module", "app"),
		cms:         store.NewCommitMultiStore(db),
		legacyAmino: legacyAmino,
		appCodec:    appCodec,
		keys:        keys,
		tkeys:       tkeys,
		router:      baseapp.NewRouter(),
		queryRouter: baseapp.NewQueryRouter(),
		invariants:  NewInvariantRegistry(),
	}

	app.paramsKeeper = paramskeeper.NewKeeper(appCodec, legacyAmino, keys[paramstypes.StoreKey], tkeys[paramstypes.TStoreKey])
	app.accountKeeper = authkeeper.NewAccountKeeper(
		appCodec,
		keys[authtypes.StoreKey],
		app.paramsKeeper.Subspace(authtypes.ModuleName),
		authtypes.ProtoBaseAccount,
		maccPerms,
	)
	app.bankKeeper = bankkeeper.NewBaseKeeper(
		appCodec,
		keys[banktypes.StoreKey],
		app.accountKeeper,
		app.paramsKeeper.Subspace(banktypes.ModuleName),
		app.ModuleAccountAddrs(),
	)
	app.votingKeeper = votingkeeper.NewKeeper(keys[votingtypes.StoreKey], app.bankKeeper)

	app.votingModule = voting.NewAppModule(app.votingKeeper)
	app.router.AddRoute(app.votingModule.Route())
	app.queryRouter.AddRoute(app.votingModule.QuerierRoute(), app.votingModule.LegacyQuerierHandler(legacyAmino))
	app.votingModule.RegisterInvariants(app.invariants)
	app.anteHandler = NewAnteHandler(maxGasPerMsg, app.ModuleAccountAddrs())

	for _, k := range keys {
		app.cms.MountStoreWithDB(k, sdk.StoreTypeIAVL, nil)
	}
	for _, k := range tkeys {
		app.cms.MountStoreWithDB(k, sdk.StoreTypeTransient, nil)
	}
	if err := app.cms.LoadLatestVersion(); err != nil {
		return nil, sdkerrors.Wrap(err, "load store")
	}
	app.header = tmproto.Header{
		ChainID: appName,
		Height:  app.cms.LastCommitID().Version + 1,
		Time:    time.Now().UTC(),
	}
	return app, nil
}

// ModuleAccountAddrs returns all the app's module account addresses.
func (app *StakeVoteApp) ModuleAccountAddrs() map[string]bool {
	modAccAddrs := make(map[string]bool)
	for acc := range maccPerms {
		modAccAddrs[authtypes.NewModuleAddress(acc).String()] = true
	}
	return modAccAddrs
}

// SetBlockTime sets the time seen by the next messages and queries.
func (app *StakeVoteApp) SetBlockTime(t time.Time) {
	app.header.Time = t.UTC()
}

// BlockTime returns the current block time
func (app *StakeVoteApp) BlockTime() time.Time {
	return app.header.Time
}

// LastBlockHeight returns the version of the last commit.
func (app *StakeVoteApp) LastBlockHeight() int64 {
	return app.cms.LastCommitID().Version
}

// Logger returns the app logger
func (app *StakeVoteApp) Logger() log.Logger {
	return app.logger
}

// NewContext returns a context on top of the latest state. Writes are discarded
// when readOnly is set.
func (app *StakeVoteApp) NewContext(readOnly bool) sdk.Context {
	var ms sdk.MultiStore = app.cms
	if readOnly {
		ms = app.cms.CacheMultiStore()
	}
	return sdk.NewContext(ms, app.header, false, app.logger)
}

// Deliver executes a single message. State changes are committed only when the
// message succeeds and all invariants hold afterwards.
func (app *StakeVoteApp) Deliver(msg sdk.Msg) (res *sdk.Result, err error) {
	ctx, write := app.NewContext(false).CacheContext()
	defer func() {
		if r := recover(); r != nil {
			switch rType := r.(type) {
			case sdk.ErrorOutOfGas:
				res, err = nil, sdkerrors.Wrapf(sdkerrors.ErrOutOfGas, "out of gas in location: %v", rType.Descriptor)
			default:
				res, err = nil, sdkerrors.Wrapf(sdkerrors.ErrPanic, "recovered: %v", r)
			}
		}
	}()

	ctx, err = app.anteHandler(ctx, msgTx{msg}, false)
	if err != nil {
		return nil, err
	}
	legacyMsg, ok := msg.(legacytx.LegacyMsg)
	if !ok {
		return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "message %T has no legacy route", msg)
	}
	handler := app.router.Route(ctx, legacyMsg.Route())
	if handler == nil {
		return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized message route: %s", legacyMsg.Route())
	}
	if res, err = handler(ctx, msg); err != nil {
		return nil, err
	}
	gasUsed := ctx.GasMeter().GasConsumed()
	// invariants are not charged to the message
	if err := app.invariants.Assert(ctx.WithGasMeter(sdk.NewInfiniteGasMeter())); err != nil {
		return nil, err
	}
	write()
	app.Commit()
	app.logger.Debug("delivered", "type", fmt.Sprintf("%T", msg), "height", app.LastBlockHeight(), "gas_used", gasUsed)
	return res, nil
}

// Commit persists the working state as a new version.
func (app *StakeVoteApp) Commit() {
	id := app.cms.Commit()
	app.header.Height = id.Version + 1
	app.header.AppHash = id.Hash
}

// Query runs a voting query on the committed state.
func (app *StakeVoteApp) Query(path []string) ([]byte, error) {
	return app.QueryRoute(votingtypes.QuerierRoute, path)
}

// QueryRoute runs a legacy query for the module registered under route.
func (app *StakeVoteApp) QueryRoute(route string, path []string) ([]byte, error) {
	querier := app.queryRouter.Route(route)
	if querier == nil {
		return nil, sdkerrors.Wrapf(sdkerrors.ErrUnknownRequest, "no custom querier found for route %s", route)
	}
	return querier(app.NewContext(true), path, abci.RequestQuery{Height: app.LastBlockHeight()})
}

// Balance returns the committed balance of addr
func (app *StakeVoteApp) Balance(addr sdk.AccAddress, denom string) sdk.Coin {
	return app.bankKeeper.GetBalance(app.NewContext(true), addr, denom)
}

// Fund mints coins to the faucet module account and sends them to addr.
func (app *StakeVoteApp) Fund(addr sdk.AccAddress, coins sdk.Coins) error {
	ctx, write := app.NewContext(false).CacheContext()
	if err := app.bankKeeper.MintCoins(ctx, FaucetAccountName, coins); err != nil {
		return sdkerrors.Wrap(err, "mint")
	}
	if err := app.bankKeeper.SendCoinsFromModuleToAccount(ctx, FaucetAccountName, addr, coins); err != nil {
		return sdkerrors.Wrap(err, "send")
	}
	write()
	app.Commit()
	return nil
}

// InitChain writes the genesis state of all modules. It fails when the state
// was initialized before.
func (app *StakeVoteApp) InitChain(genesis GenesisState) error {
	if app.LastBlockHeight() != 0 {
		return fmt.Errorf("state already initialized at height %d", app.LastBlockHeight())
	}
	ctx, write := app.NewContext(false).CacheContext()

	authGenesis := authtypes.DefaultGenesisState()
	if bz, ok := genesis[authtypes.ModuleName]; ok {
		if err := app.appCodec.UnmarshalJSON(bz, authGenesis); err != nil {
			return sdkerrors.Wrap(err, "auth genesis")
		}
	}
	app.accountKeeper.SetParams(ctx, authGenesis.Params)

	bankGenesis := banktypes.DefaultGenesisState()
	if bz, ok := genesis[banktypes.ModuleName]; ok {
		if err := app.appCodec.UnmarshalJSON(bz, bankGenesis); err != nil {
			return sdkerrors.Wrap(err, "bank genesis")
		}
	}
	if err := bankGenesis.Validate(); err != nil {
		return sdkerrors.Wrap(err, "bank genesis")
	}
	app.bankKeeper.InitGenesis(ctx, bankGenesis)

	if bz, ok := genesis[votingtypes.ModuleName]; ok {
		if err := app.votingModule.InitGenesis(ctx, bz); err != nil {
			return err
		}
	}
	if err := app.invariants.Assert(ctx); err != nil {
		return err
	}
	write()
	app.Commit()
	app.logger.Info("genesis initialized", "height", app.LastBlockHeight())
	return nil
}

// AssertInvariants runs all registered invariants on the committed state.
func (app *StakeVoteApp) AssertInvariants() error {
	return app.invariants.Assert(app.NewContext(true))
}

// GenesisState of the app keyed by module name.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState returns the default genesis of all modules.
func NewDefaultGenesisState(cdc codec.JSONCodec) GenesisState {
	return GenesisState{
		authtypes.ModuleName:   cdc.MustMarshalJSON(authtypes.DefaultGenesisState()),
		banktypes.ModuleName:   cdc.MustMarshalJSON(banktypes.DefaultGenesisState()),
		votingtypes.ModuleName: voting.AppModuleBasic{}.DefaultGenesis(),
	}
}

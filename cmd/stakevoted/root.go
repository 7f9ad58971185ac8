package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/server"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"

	"github.com/confio/stakevote/app"
	"github.com/confio/stakevote/x/voting"
	votingclient "github.com/confio/stakevote/x/voting/client"
)

const (
	flagLogLevel     = "log_level"
	flagLogFormat    = "log_format"
	flagDBBackend    = "db_backend"
	flagRESTAddress  = "rest_address"
	flagBech32Prefix = "bech32_prefix"
	flagMaxGas       = "max_gas_per_msg"
	flagBlockTime    = "block-time"
)

// config keys that can be overwritten by a persistent flag of the same name
var configFlags = []string{flagLogLevel, flagLogFormat, flagDBBackend, flagRESTAddress, flagBech32Prefix, flagMaxGas}

// daemon holds the state shared by all commands of a single execution.
type daemon struct {
	cfg    app.Config
	logger log.Logger

	db  dbm.DB
	app *app.StakeVoteApp
}

// NewRootCmd creates a new root command for stakevoted.
func NewRootCmd() (*cobra.Command, *daemon) {
	d := &daemon{}
	rootCmd := &cobra.Command{
		Use:          "stakevoted",
		Short:        "Stake weighted governance engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return d.setup(cmd)
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.String(flags.FlagHome, "", "directory for config and data")
	pf.String(flagLogLevel, "", "the logging level (trace|debug|info|warn|error|fatal|panic)")
	pf.String(flagLogFormat, "", "the logging format (json|plain)")
	pf.String(flagDBBackend, "", "the database backend (goleveldb|memdb|...)")
	pf.String(flagRESTAddress, "", "the address the rest server listens on")
	pf.String(flagBech32Prefix, "", "the bech32 prefix of account addresses")
	pf.Uint64(flagMaxGas, 0, "gas limit for a single message, 0 for unlimited")
	pf.String(flagBlockTime, "", "block time for executed messages and queries, defaults to now")

	rootCmd.AddCommand(
		InitCmd(d),
		txCommand(),
		queryCommand(),
		ServeCmd(d),
		ExportCmd(d),
		FaucetCmd(d),
	)
	return rootCmd, d
}

// Execute runs the root command with the engine loader of the daemon in the
// command context. The database is closed when the command returns.
func Execute(rootCmd *cobra.Command, d *daemon, defaultHome string) error {
	if f := rootCmd.PersistentFlags().Lookup(flags.FlagHome); f != nil && f.Value.String() == "" {
		if err := f.Value.Set(defaultHome); err != nil {
			return err
		}
		f.DefValue = defaultHome
	}
	defer d.close()
	ctx := votingclient.WithEngineLoader(context.Background(), d.loadEngine)
	return rootCmd.ExecuteContext(ctx)
}

func (d *daemon) setup(cmd *cobra.Command) error {
	home, err := cmd.Flags().GetString(flags.FlagHome)
	if err != nil {
		return err
	}
	cfg, err := app.LoadConfig(cmd.Context(), home)
	if err != nil {
		return err
	}
	overrides := make(map[string]interface{})
	for _, name := range configFlags {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			overrides[name] = f.Value.String()
		}
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return err
	}
	app.SetAddressPrefixes(cfg.Bech32Prefix)
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	d.cfg, d.logger = cfg, logger
	return nil
}

func newLogger(cfg app.Config, out io.Writer) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if cfg.LogFormat == app.LogFormatPlain {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return server.ZeroLogWrapper{Logger: zerolog.New(out).Level(lvl).With().Timestamp().Logger()}, nil
}

// openApp loads the application state from the data dir. A fresh state is
// initialized from the genesis file.
func (d *daemon) openApp() (*app.StakeVoteApp, error) {
	if d.app != nil {
		return d.app, nil
	}
	db, err := app.OpenDB(d.cfg)
	if err != nil {
		return nil, err
	}
	gapp, err := app.NewStakeVoteApp(d.logger, db, d.cfg.MaxGasPerMsg)
	if err != nil {
		db.Close()
		return nil, err
	}
	if gapp.LastBlockHeight() == 0 {
		doc, err := app.ReadGenesisFile(d.cfg.Home)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("genesis: %w", err)
		}
		gapp.SetBlockTime(doc.GenesisTime)
		if err := gapp.InitChain(doc.AppState); err != nil {
			db.Close()
			return nil, err
		}
	}
	d.db, d.app = db, gapp
	return gapp, nil
}

func (d *daemon) loadEngine(cmd *cobra.Command) (votingclient.Engine, error) {
	now, err := blockClock(cmd)
	if err != nil {
		return nil, err
	}
	gapp, err := d.openApp()
	if err != nil {
		return nil, err
	}
	return &appEngine{app: gapp, now: now}, nil
}

func (d *daemon) close() {
	if d.db == nil {
		return
	}
	if err := d.db.Close(); err != nil && d.logger != nil {
		d.logger.Error("close database", "err", err)
	}
	d.db, d.app = nil, nil
}

// blockClock returns the time source for blocks. A fixed time is used when
// the block time flag is set.
func blockClock(cmd *cobra.Command) (func() time.Time, error) {
	f := cmd.Flags().Lookup(flagBlockTime)
	if f == nil || f.Value.String() == "" {
		return time.Now, nil
	}
	t, err := cast.ToTimeE(f.Value.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", flagBlockTime, err)
	}
	return func() time.Time { return t }, nil
}

// appEngine serializes access to the application. Each call sees the
// current block time.
type appEngine struct {
	mu  sync.Mutex
	app *app.StakeVoteApp
	now func() time.Time
}

func (e *appEngine) Deliver(msg sdk.Msg) (*sdk.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.app.SetBlockTime(e.now())
	return e.app.Deliver(msg)
}

func (e *appEngine) Query(path []string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.app.SetBlockTime(e.now())
	return e.app.Query(path)
}

func txCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transactions subcommands",
	}
	cmd.AddCommand(voting.AppModuleBasic{}.GetTxCmd())
	return cmd
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Querying subcommands",
	}
	cmd.AddCommand(voting.AppModuleBasic{}.GetQueryCmd())
	return cmd
}

// parseBalance parses an "address=coins" pair
func parseBalance(s string) (sdk.AccAddress, sdk.Coins, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("expected address=coins: %q", s)
	}
	addr, err := sdk.AccAddressFromBech32(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("address: %w", err)
	}
	coins, err := sdk.ParseCoinsNormalized(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("coins: %w", err)
	}
	if coins.Empty() {
		return nil, nil, fmt.Errorf("coins must not be empty: %q", s)
	}
	return addr, coins, nil
}

package app

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cast"
	dbm "github.com/tendermint/tm-db"
	yaml "gopkg.in/yaml.v2"
)

const (
	// EnvPrefix is the prefix of all environment overrides
	EnvPrefix = "STAKEVOTE_"

	configDir      = "config"
	dataDir        = "data"
	configFileName = "app.yaml"
	genesisName    = "genesis.json"
	dotEnvFileName = ".env"
	dbName         = "application"

	LogFormatJSON  = "json"
	LogFormatPlain = "plain"
)

// Config is the operator configuration of the daemon.
type Config struct {
	Home         string `yaml:"-"`
	DBBackend    string `yaml:"db_backend" env:"DB_BACKEND,overwrite"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL,overwrite"`
	LogFormat    string `yaml:"log_format" env:"LOG_FORMAT,overwrite"`
	RESTAddress  string `yaml:"rest_address" env:"REST_ADDRESS,overwrite"`
	Bech32Prefix string `yaml:"bech32_prefix" env:"BECH32_PREFIX,overwrite"`
	MaxGasPerMsg uint64 `yaml:"max_gas_per_msg" env:"MAX_GAS_PER_MSG,overwrite"`
}

// DefaultConfig returns the config written by init
func DefaultConfig(home string) Config {
	return Config{
		Home:         home,
		DBBackend:    string(dbm.GoLevelDBBackend),
		LogLevel:     "info",
		LogFormat:    LogFormatPlain,
		RESTAddress:  "127.0.0.1:1317",
		Bech32Prefix: "stake",
	}
}

// ValidateBasic checks the config values
func (c Config) ValidateBasic() error {
	if c.Home == "" {
		return fmt.Errorf("home must not be empty")
	}
	switch c.LogFormat {
	case LogFormatJSON, LogFormatPlain:
	default:
		return fmt.Errorf("unsupported log format: %q", c.LogFormat)
	}
	if c.Bech32Prefix == "" {
		return fmt.Errorf("bech32 prefix must not be empty")
	}
	if c.RESTAddress == "" {
		return fmt.Errorf("rest address must not be empty")
	}
	return nil
}

// ConfigFile is the path of the yaml config in home
func ConfigFile(home string) string {
	return filepath.Join(home, configDir, configFileName)
}

// GenesisFile is the path of the genesis file in home
func GenesisFile(home string) string {
	return filepath.Join(home, configDir, genesisName)
}

// DataDir is the directory of the application database
func DataDir(home string) string {
	return filepath.Join(home, dataDir)
}

// LoadConfig reads the yaml file in home, then an optional .env file in home and
// the process environment. Environment values win over the file.
func LoadConfig(ctx context.Context, home string) (Config, error) {
	cfg := DefaultConfig(home)
	bz, err := ioutil.ReadFile(ConfigFile(home))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return Config{}, err
	default:
		if err := yaml.Unmarshal(bz, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", ConfigFile(home), err)
		}
	}
	cfg.Home = home

	envFile := filepath.Join(home, dotEnvFileName)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	l := envconfig.PrefixLookuper(EnvPrefix, envconfig.OsLookuper())
	if err := envconfig.ProcessWith(ctx, &cfg, l); err != nil {
		return Config{}, err
	}
	return cfg, cfg.ValidateBasic()
}

// WriteConfig stores the config as yaml in home
func WriteConfig(cfg Config) error {
	bz, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(ConfigFile(cfg.Home)), 0o755); err != nil {
		return err
	}
	return ioutil.WriteFile(ConfigFile(cfg.Home), bz, 0o644)
}

// ApplyOverrides sets config fields from loosely typed values such as
// command line flags. Unknown keys are rejected.
func (c *Config) ApplyOverrides(values map[string]interface{}) error {
	for k, v := range values {
		var err error
		switch k {
		case "db_backend":
			c.DBBackend, err = cast.ToStringE(v)
		case "log_level":
			c.LogLevel, err = cast.ToStringE(v)
		case "log_format":
			c.LogFormat, err = cast.ToStringE(v)
		case "rest_address":
			c.RESTAddress, err = cast.ToStringE(v)
		case "bech32_prefix":
			c.Bech32Prefix, err = cast.ToStringE(v)
		case "max_gas_per_msg":
			c.MaxGasPerMsg, err = cast.ToUint64E(v)
		default:
			return fmt.Errorf("unknown config key: %q", k)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return c.ValidateBasic()
}

// SetAddressPrefixes configures the bech32 prefixes of the sdk. Must be called
// before any address is parsed or printed.
func SetAddressPrefixes(prefix string) {
	config := sdk.GetConfig()
	config.SetBech32PrefixForAccount(prefix, prefix+sdk.PrefixPublic)
	config.SetBech32PrefixForValidator(prefix+sdk.PrefixValidator+sdk.PrefixOperator, prefix+sdk.PrefixValidator+sdk.PrefixOperator+sdk.PrefixPublic)
	config.SetBech32PrefixForConsensusNode(prefix+sdk.PrefixValidator+sdk.PrefixConsensus, prefix+sdk.PrefixValidator+sdk.PrefixConsensus+sdk.PrefixPublic)
}

// OpenDB opens the application database in home
func OpenDB(cfg Config) (dbm.DB, error) {
	return dbm.NewDB(dbName, dbm.BackendType(cfg.DBBackend), DataDir(cfg.Home))
}

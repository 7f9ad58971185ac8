package app

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/confio/stakevote/x/voting"
	votingtypes "github.com/confio/stakevote/x/voting/types"
)

// GenesisDoc is the content of the genesis file
type GenesisDoc struct {
	GenesisTime time.Time    `json:"genesis_time"`
	AppState    GenesisState `json:"app_state"`
}

// ValidateGenesis checks the state of all modules
func ValidateGenesis(gs GenesisState) error {
	cdc := MakeEncodingConfig().Marshaler
	if bz, ok := gs[banktypes.ModuleName]; ok {
		var bankGenesis banktypes.GenesisState
		if err := cdc.UnmarshalJSON(bz, &bankGenesis); err != nil {
			return fmt.Errorf("bank genesis: %w", err)
		}
		if err := bankGenesis.Validate(); err != nil {
			return fmt.Errorf("bank genesis: %w", err)
		}
	}
	if bz, ok := gs[votingtypes.ModuleName]; ok {
		if err := (voting.AppModuleBasic{}).ValidateGenesis(bz); err != nil {
			return err
		}
	}
	return nil
}

// AddGenesisBalance credits coins to addr in the bank genesis
func AddGenesisBalance(gs GenesisState, addr sdk.AccAddress, coins sdk.Coins) error {
	cdc := MakeEncodingConfig().Marshaler
	bankGenesis := banktypes.DefaultGenesisState()
	if bz, ok := gs[banktypes.ModuleName]; ok {
		if err := cdc.UnmarshalJSON(bz, bankGenesis); err != nil {
			return fmt.Errorf("bank genesis: %w", err)
		}
	}
	found := false
	for i, b := range bankGenesis.Balances {
		if b.Address == addr.String() {
			bankGenesis.Balances[i].Coins = b.Coins.Add(coins...)
			found = true
			break
		}
	}
	if !found {
		bankGenesis.Balances = append(bankGenesis.Balances, banktypes.Balance{Address: addr.String(), Coins: coins})
	}
	bankGenesis.Balances = banktypes.SanitizeGenesisBalances(bankGenesis.Balances)
	if !bankGenesis.Supply.Empty() {
		bankGenesis.Supply = bankGenesis.Supply.Add(coins...)
	}
	bz, err := cdc.MarshalJSON(bankGenesis)
	if err != nil {
		return err
	}
	gs[banktypes.ModuleName] = bz
	return nil
}

// ReadGenesisFile loads and validates the genesis file in home
func ReadGenesisFile(home string) (GenesisDoc, error) {
	var doc GenesisDoc
	bz, err := ioutil.ReadFile(GenesisFile(home))
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal(bz, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", GenesisFile(home), err)
	}
	return doc, ValidateGenesis(doc.AppState)
}

// WriteGenesisFile stores the genesis doc in home
func WriteGenesisFile(home string, doc GenesisDoc) error {
	if err := ValidateGenesis(doc.AppState); err != nil {
		return err
	}
	bz, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(GenesisFile(home)), 0o755); err != nil {
		return err
	}
	return ioutil.WriteFile(GenesisFile(home), bz, 0o644)
}

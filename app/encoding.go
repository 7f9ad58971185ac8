package app

import (
	"github.com/cosmos/cosmos-sdk/std"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	appparams "github.com/confio/stakevote/app/params"
	"github.com/confio/stakevote/x/voting"
)

// MakeEncodingConfig creates a new EncodingConfig with all modules registered
func MakeEncodingConfig() appparams.EncodingConfig {
	encodingConfig := appparams.MakeEncodingConfig()
	std.RegisterLegacyAminoCodec(encodingConfig.Amino)
	std.RegisterInterfaces(encodingConfig.InterfaceRegistry)
	authtypes.RegisterLegacyAminoCodec(encodingConfig.Amino)
	authtypes.RegisterInterfaces(encodingConfig.InterfaceRegistry)
	banktypes.RegisterLegacyAminoCodec(encodingConfig.Amino)
	banktypes.RegisterInterfaces(encodingConfig.InterfaceRegistry)
	voting.AppModuleBasic{}.RegisterLegacyAminoCodec(encodingConfig.Amino)
	return encodingConfig
}

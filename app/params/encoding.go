package params

import (
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/types"
)

// EncodingConfig specifies the concrete encoding types to use for the application.
// Bank and auth state are proto encoded, voting messages and records use amino JSON.
type EncodingConfig struct {
	InterfaceRegistry types.InterfaceRegistry
	Marshaler         codec.Codec
	Amino             *codec.LegacyAmino
}

// MakeEncodingConfig creates an EncodingConfig without any module registered.
func MakeEncodingConfig() EncodingConfig {
	amino := codec.NewLegacyAmino()
	interfaceRegistry := types.NewInterfaceRegistry()
	return EncodingConfig{
		InterfaceRegistry: interfaceRegistry,
		Marshaler:         codec.NewProtoCodec(interfaceRegistry),
		Amino:             amino,
	}
}

package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName is the name of the voting module
	ModuleName = "voting"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// QuerierRoute is the querier route for the voting module
	QuerierRoute = ModuleName

	// RouterKey is the msg router key for the voting module
	RouterKey = ModuleName
)

// MinStakedTokens is the stake a voter must exceed to cast a vote.
const MinStakedTokens uint64 = 5_000_000

// nolint
var (
	ConfigKey      = []byte{0x01}
	VoterPrefix    = []byte{0x02}
	ProposalPrefix = []byte{0x03}
	VotePrefix     = []byte{0x04}
	VaultPrefix    = []byte{0x05}
)

// seeds for the derived custody addresses
var vaultSeed = []byte("voter")

// GetVoterKey returns the store key of the voter record owned by addr.
func GetVoterKey(owner sdk.AccAddress) []byte {
	return append(append([]byte{}, VoterPrefix...), address.MustLengthPrefix(owner)...)
}

// GetVaultKey returns the store key that maps a voter vault back to its owner.
func GetVaultKey(vault sdk.AccAddress) []byte {
	return append(append([]byte{}, VaultPrefix...), address.MustLengthPrefix(vault)...)
}

// GetProposalKey returns the store key of a proposal. Ids are big endian so that
// iteration returns proposals in creation order.
func GetProposalKey(id uint16) []byte {
	return append(append([]byte{}, ProposalPrefix...), proposalIDBytes(id)...)
}

// GetVotesByProposalPrefix returns the prefix shared by all votes on a proposal.
func GetVotesByProposalPrefix(proposalID uint16) []byte {
	return append(append([]byte{}, VotePrefix...), proposalIDBytes(proposalID)...)
}

// GetVoteKey returns the store key of the vote cast by voter on a proposal.
func GetVoteKey(proposalID uint16, voter sdk.AccAddress) []byte {
	return append(GetVotesByProposalPrefix(proposalID), address.MustLengthPrefix(voter)...)
}

// VoterVaultAddress derives the custodial account that holds the stake of a voter.
// No private key exists for it, only the voting module moves funds out.
func VoterVaultAddress(owner sdk.AccAddress) sdk.AccAddress {
	return address.Module(ModuleName, append(append([]byte{}, vaultSeed...), owner...))
}

func proposalIDBytes(id uint16) []byte {
	bz := make([]byte, 2)
	binary.BigEndian.PutUint16(bz, id)
	return bz
}

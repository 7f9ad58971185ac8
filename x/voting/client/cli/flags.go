package cli

import (
	"fmt"
	"math"

	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	flag "github.com/spf13/pflag"
)

const (
	FlagDescription = "description"
	FlagQuorumVotes = "quorum-votes"
	FlagEndingTS    = "ending-ts"
	FlagPoints      = "points"
)

// flagSetSigner returns the flagset for the signing account. Signatures are not
// verified locally so the bech32 address is taken as given.
func flagSetSigner() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(flags.FlagFrom, "", "Bech32 address of the sender")
	return fs
}

func flagSetProposal() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(FlagDescription, "", "The proposal's description")
	fs.Uint64(FlagQuorumVotes, 0, "Votes required for the proposal to count (stored only)")
	fs.Int64(FlagEndingTS, 0, "Unix time the voting ends (stored only)")
	fs.Uint64(FlagPoints, 0, "Points awarded to every voter")
	return fs
}

func signerFromFlags(fs *flag.FlagSet) (sdk.AccAddress, error) {
	from, err := fs.GetString(flags.FlagFrom)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddressFromBech32(from)
}

func parseUint64(name, s string) (uint64, error) {
	v, err := cast.ToUint64E(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

func parseProposalID(s string) (uint16, error) {
	v, err := parseUint64("proposal id", s)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, fmt.Errorf("proposal id: %d out of range", v)
	}
	return uint16(v), nil
}

func parseOption(s string) (uint8, error) {
	v, err := parseUint64("option", s)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint8 {
		return 0, fmt.Errorf("option: %d out of range", v)
	}
	return uint8(v), nil
}

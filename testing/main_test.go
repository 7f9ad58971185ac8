//go:build system_test
// +build system_test

package testing

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/tendermint/tendermint/libs/rand"
)

var (
	sut     *SystemUnderTest
	verbose bool
)

// TestMain runs the suite against the stakevoted binary on the PATH. Run with
// `go test -tags system_test ./testing -rebuild` to install the current tree first.
func TestMain(m *testing.M) {
	rebuild := flag.Bool("rebuild", false, "install the stakevoted binary before running")
	flag.DurationVar(&defaultWaitTime, "wait-time", defaultWaitTime, "time to wait for the rest server")
	flag.BoolVar(&verbose, "verbose", false, "print commands and server logs")
	flag.Parse()

	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	workDir = filepath.Join(dir, "..")
	sut = NewSystemUnderTest(verbose)
	sut.Logf("work dir: %s\n", workDir)
	if *rebuild {
		sut.BuildNewBinary()
	}

	exitCode := m.Run()

	sut.StopServer()
	if exitCode != 0 {
		sut.PrintBuffer()
		fmt.Fprintf(os.Stderr, "%s system tests failed, home kept in %s\n", binaryName, sut.home())
	}
	os.Exit(exitCode)
}

// randomBech32Addr returns a fresh account address with the prefix of the system under test
func randomBech32Addr() string {
	bech32Addr, err := bech32.ConvertAndEncode(sut.bech32, rand.Bytes(address.Len))
	if err != nil {
		panic(err.Error())
	}
	return bech32Addr
}

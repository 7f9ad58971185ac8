package testing

import (
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// StakeVoteCli wraps the command line interface
type StakeVoteCli struct {
	t             *testing.T
	homeDir       string
	blockTime     string
	Debug         bool
	assertErrorFn func(t require.TestingT, err error, msgAndArgs ...interface{})
}

func NewStakeVoteCli(t *testing.T, sut *SystemUnderTest, verbose bool) *StakeVoteCli {
	return &StakeVoteCli{
		t:             t,
		homeDir:       sut.home(),
		Debug:         verbose,
		assertErrorFn: require.NoError,
	}
}

// RunErrorAssert is custom type that is satisfies by testify matchers as well
type RunErrorAssert func(t require.TestingT, err error, msgAndArgs ...interface{})

// WithRunErrorMatcher assert function to ensure run command error value
func (c StakeVoteCli) WithRunErrorMatcher(f RunErrorAssert) StakeVoteCli {
	c.assertErrorFn = f
	return c
}

// WithBlockTime fixes the block time of all commands. RFC3339 format.
func (c StakeVoteCli) WithBlockTime(ts string) StakeVoteCli {
	c.blockTime = ts
	return c
}

// Tx runs a voting transaction command, signed by from
func (c StakeVoteCli) Tx(from string, args ...string) string {
	cmd := append([]string{"tx", "voting"}, args...)
	return c.run(c.withFlags(append(cmd, "--from", from)...))
}

// Query runs a voting query command
func (c StakeVoteCli) Query(args ...string) string {
	return c.run(c.withFlags(append([]string{"q", "voting"}, args...)...))
}

// CustomCommand runs any stakevoted command
func (c StakeVoteCli) CustomCommand(args ...string) string {
	return c.run(c.withFlags(args...))
}

func (c StakeVoteCli) run(args []string) string {
	if c.Debug {
		c.t.Logf("+++ running `%s %s`", binaryName, strings.Join(args, " "))
	}
	gotOut, gotErr := func() (out []byte, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("recovered from panic: %v", r)
			}
		}()
		cmd := exec.Command(locateExecutable(binaryName), args...) //nolint:gosec
		cmd.Dir = workDir
		return cmd.CombinedOutput()
	}()
	c.assertErrorFn(c.t, gotErr, string(gotOut))
	return string(gotOut)
}

func (c StakeVoteCli) withFlags(args ...string) []string {
	args = append(args, "--home", c.homeDir, "--log_level", "error")
	if c.blockTime != "" {
		args = append(args, "--block-time", c.blockTime)
	}
	return args
}

// QueryVoter returns the voter record as json
func (c StakeVoteCli) QueryVoter(addr string) string {
	return c.Query("voter", addr)
}

// QueryVotingPower returns the current vote weight of the voter
func (c StakeVoteCli) QueryVotingPower(addr string) uint64 {
	raw := c.Query("voting-power", addr)
	require.Contains(c.t, raw, "weight", raw)
	return gjson.Get(raw, "weight").Uint()
}

// RequireTxSuccess require the received response to contain the event type
func RequireTxSuccess(t *testing.T, got string, eventType string) {
	t.Helper()
	require.True(t, gjson.Get(got, "events.#(type=="+eventType+")").Exists(), "missing event %q: %s", eventType, got)
}

// ErrTxFailedMatcher requires error with the given message
func ErrTxFailedMatcher(expMsg string) RunErrorAssert {
	return func(t require.TestingT, err error, args ...interface{}) {
		expErrWithMsg(t, err, args, expMsg)
	}
}

func expErrWithMsg(t require.TestingT, err error, args []interface{}, expMsg string) {
	require.Error(t, err, args)
	var found bool
	for _, v := range args {
		if strings.Contains(fmt.Sprintf("%s", v), expMsg) {
			found = true
			break
		}
	}
	require.True(t, found, "expected %q but got: %s", expMsg, args)
}

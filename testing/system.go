package testing

import (
	"bufio"
	"container/ring"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"
)

const binaryName = "stakevoted"

var workDir string

// SystemUnderTest runs the stakevoted binary against a local home directory
type SystemUnderTest struct {
	homeDir  string
	restAddr string
	bech32   string
	server   *exec.Cmd
	outBuff  *ring.Ring
	errBuff  *ring.Ring
	out      io.Writer
	verbose  bool
}

func NewSystemUnderTest(verbose bool) *SystemUnderTest {
	return &SystemUnderTest{
		homeDir:  "./testnet/stakevoted",
		restAddr: "127.0.0.1:13170",
		bech32:   "stake",
		outBuff:  ring.New(100),
		errBuff:  ring.New(100),
		out:      os.Stdout,
		verbose:  verbose,
	}
}

// SetupHome writes a fresh config and genesis with the given balances as address=coins
func (s *SystemUnderTest) SetupHome(t *testing.T, balances ...string) {
	s.Log("Setup home")
	require.NoError(t, os.RemoveAll(s.home()))
	args := []string{"init", "--rest_address=" + s.restAddr, "--bech32_prefix=" + s.bech32}
	for _, b := range balances {
		args = append(args, "--balance="+b)
	}
	s.ExecAndWait(t, args...)
}

// ModifyGenesisJSON replaces the genesis content with the mutator result
func (s SystemUnderTest) ModifyGenesisJSON(t *testing.T, mutators ...func([]byte) []byte) {
	file := filepath.Join(s.home(), "config", "genesis.json")
	bz, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	for _, m := range mutators {
		bz = m(bz)
	}
	require.NoError(t, ioutil.WriteFile(file, bz, 0o600))
}

// SetGenesisTime returns a mutator for the genesis time
func SetGenesisTime(t *testing.T, ts time.Time) func([]byte) []byte {
	return func(bz []byte) []byte {
		out, err := sjson.SetBytes(bz, "genesis_time", ts.UTC().Format(time.RFC3339))
		require.NoError(t, err)
		return out
	}
}

// ExecAndWait runs the stakevoted command with the home dir of the system
func (s SystemUnderTest) ExecAndWait(t *testing.T, args ...string) string {
	args = append(args, "--home", s.home())
	s.Logf("Execute `%s %s`\n", binaryName, strings.Join(args, " "))
	cmd := exec.Command(locateExecutable(binaryName), args...) //nolint:gosec
	cmd.Dir = workDir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	s.Logf("Result: %s\n", string(out))
	return string(out)
}

// StartServer runs the rest server in the background until StopServer
func (s *SystemUnderTest) StartServer(t *testing.T) {
	s.Log("Start server\n")
	cmd := exec.Command(locateExecutable(binaryName), "serve", "--home", s.home(), "--log_level=debug") //nolint:gosec
	cmd.Dir = workDir
	s.watchLogs(cmd)
	require.NoError(t, cmd.Start())
	s.server = cmd
	s.awaitServerUp(t)
}

func (s *SystemUnderTest) watchLogs(cmd *exec.Cmd) {
	errReader, err := cmd.StderrPipe()
	if err != nil {
		panic(fmt.Sprintf("unexpected error %#+v", err))
	}
	go appendToBuf(errReader, s.errBuff)

	outReader, err := cmd.StdoutPipe()
	if err != nil {
		panic(fmt.Sprintf("unexpected error %#+v", err))
	}
	go appendToBuf(outReader, s.outBuff)
}

func appendToBuf(r io.ReadCloser, b *ring.Ring) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		b.Value = scanner.Text()
		b = b.Next()
	}
}

// awaitServerUp polls the config endpoint until the server answers
func (s SystemUnderTest) awaitServerUp(t *testing.T) {
	t.Log("Await server starts")
	ctx, done := context.WithTimeout(context.Background(), defaultWaitTime)
	defer done()
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.RESTURL("/voting/proposals"), nil)
		require.NoError(t, err)
		if rsp, err := http.DefaultClient.Do(req); err == nil {
			rsp.Body.Close()
			return
		}
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for server start: %s", defaultWaitTime)
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// StopServer terminates the rest server and waits for the database to be released
func (s *SystemUnderTest) StopServer() {
	if s.server == nil {
		return
	}
	s.Log("Stop server\n")
	if err := s.server.Process.Signal(syscall.SIGTERM); err != nil {
		s.Logf("failed to stop server: %s\n", err)
	}
	if err := s.server.Wait(); err != nil {
		s.Logf("server exited: %s\n", err)
	}
	s.server = nil
}

// RESTURL returns the full url for the path on the rest server
func (s SystemUnderTest) RESTURL(path string) string {
	return "http://" + s.restAddr + path
}

// PrintBuffer prints the server logs to the console
func (s SystemUnderTest) PrintBuffer() {
	s.outBuff.Do(func(v interface{}) {
		if v != nil {
			fmt.Fprintf(s.out, "out> %s\n", v)
		}
	})
	fmt.Fprint(s.out, "8< server err -----------------------------------------\n")
	s.errBuff.Do(func(v interface{}) {
		if v != nil {
			fmt.Fprintf(s.out, "err> %s\n", v)
		}
	})
}

// BuildNewBinary builds and installs a new stakevoted binary
func (s SystemUnderTest) BuildNewBinary() {
	s.Log("Install binaries\n")
	cmd := exec.Command(locateExecutable("go"), "install", "./cmd/"+binaryName)
	cmd.Dir = workDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		panic(fmt.Sprintf("unexpected error %#v : output: %s", err, string(out)))
	}
}

func (s SystemUnderTest) home() string {
	return filepath.Join(workDir, s.homeDir)
}

func (s SystemUnderTest) Log(msg string) {
	if s.verbose {
		fmt.Fprint(s.out, msg)
	}
}

func (s SystemUnderTest) Logf(msg string, args ...interface{}) {
	s.Log(fmt.Sprintf(msg, args...))
}

// locateExecutable looks up the binary on the OS path.
func locateExecutable(file string) string {
	path, err := exec.LookPath(file)
	if err != nil {
		panic(fmt.Sprintf("unexpected error %#v", err))
	}
	if path == "" {
		panic(fmt.Sprintf("%q not found", file))
	}
	return path
}

var defaultWaitTime = 30 * time.Second

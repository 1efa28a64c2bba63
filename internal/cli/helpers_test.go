package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scholar/internal/paths"
)

// testEnv isolates a CLI run: config and data directories live under a
// temp dir and are selected through the environment.
type testEnv struct {
	t         *testing.T
	configDir string
	dataset   string
}

// cmdResult holds the output of one CLI invocation.
type cmdResult struct {
	Stdout string
	Stderr string
	Err    error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		t:         t,
		configDir: filepath.Join(dir, "config"),
		dataset:   filepath.Join(dir, "data", paths.DefaultDatasetName),
	}
	t.Setenv(paths.EnvConfigDir, env.configDir)
	t.Setenv(paths.EnvDataset, env.dataset)
	t.Setenv(envLogLevel, "")
	return env
}

// run executes the root command with args.
func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return cmdResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// mustRun executes the root command and fails the test on error.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	require.NoError(e.t, res.Err, "scholar %s\nstderr: %s", strings.Join(args, " "), res.Stderr)
	return res
}

// lines splits output into non-empty lines.
func lines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

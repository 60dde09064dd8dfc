// The cmd package carries CLI integration tests that exercise the full
// stack: flag parsing -> service -> store -> SQLite. The ranking, hierarchy
// and integrity rules have dedicated unit tests in internal/store; these
// tests prove the wiring.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the stash binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "stash-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		name := "stash"
		if os.PathSeparator == '\\' {
			name = "stash.exe"
		}
		binaryPath = filepath.Join(tmpDir, name)

		wd, err := os.Getwd()
		if err != nil {
			buildErr = err
			return
		}

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = filepath.Dir(wd) // project root, parent of cmd/
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

// testEnv runs stash commands against an isolated database and home dir.
type testEnv struct {
	t      *testing.T
	dir    string
	db     string
	binary string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		t:      t,
		dir:    dir,
		db:     filepath.Join(dir, "stash.db"),
		binary: buildBinary(t),
	}
	env.run("init")
	return env
}

// run executes stash with the given args and returns combined output,
// failing the test on error.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("stash %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes stash and returns combined output and the error, for
// tests that expect failure.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	full := append([]string{"--db", e.db}, args...)
	cmd := exec.Command(e.binary, full...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.dir)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (e *testEnv) contains(out, want string) {
	e.t.Helper()
	if !strings.Contains(out, want) {
		e.t.Errorf("output missing %q:\n%s", want, out)
	}
}

// Package oracle adapts an external interestingness test into Go,
// replacing the original dynamic-module-import contract with a
// subprocess protocol: the oracle is any executable, invoked the way
// fstest/test_all's trial() invokes its test binaries.
package oracle

import (
	"bytes"
	"errors"
	"os"
	"os/exec"

	pkgerrors "github.com/pkg/errors"

	"github.com/lithium-reducer/lithium/internal/lerrors"
)

// Adapter is the interface the engine probes a candidate testcase
// through.
type Adapter interface {
	// Init runs the oracle's one-time setup, if the driver was told
	// (via --oracle-init) that this oracle supports it.
	Init(args []string) error

	// Interesting reports whether the candidate currently written at
	// testcasePath (exposed via LITHIUM_TESTCASE too) still reproduces
	// the condition args describes. tempPrefix is a scratch-file prefix
	// the oracle may use for its own intermediate files.
	Interesting(args []string, testcasePath, tempPrefix string) (bool, error)
}

// execAdapter invokes an external program per probe, per SPEC_FULL.md
// §4: `<path> <args...> <tempPrefix>`, with the candidate's path also
// exposed via LITHIUM_TESTCASE for oracles that ignore positional args.
type execAdapter struct {
	path string
}

// New returns an Adapter that shells out to the executable at path.
func New(path string) Adapter {
	return &execAdapter{path: path}
}

func (a *execAdapter) Init(args []string) error {
	cmdArgs := append([]string{"--lithium-init"}, args...)
	cmd := exec.Command(a.path, cmdArgs...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return lerrors.OracleFault(pkgerrors.Wrapf(err, "oracle init failed: %s", stderr.String()))
	}
	return nil
}

func (a *execAdapter) Interesting(args []string, testcasePath, tempPrefix string) (bool, error) {
	cmdArgs := append(append([]string{}, args...), tempPrefix)
	cmd := exec.Command(a.path, cmdArgs...)
	cmd.Env = append(os.Environ(), "LITHIUM_TESTCASE="+testcasePath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// A clean nonzero exit means "not interesting", not a fault.
		return false, nil
	}
	// The oracle could not even be started (missing file, not
	// executable, etc.) — this is a fault, not a verdict.
	return false, lerrors.OracleFault(pkgerrors.Wrapf(err, "running oracle %q: %s", a.path, stderr.String()))
}

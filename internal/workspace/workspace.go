// Package workspace manages Lithium's per-run work directory: probing
// for a free tmp<N> name at startup and naming/writing the numbered
// snapshot files strategies and the candidate harness leave behind.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/lithium-reducer/lithium/internal/lerrors"
	"github.com/lithium-reducer/lithium/internal/logging"
	"github.com/lithium-reducer/lithium/internal/random"
)

// maxProbeAttempts is how many sequential tmp<N> collisions we accept
// before falling back to a random-suffixed name. This only matters
// when many lithium runs start in the same directory at once.
const maxProbeAttempts = 16

// Workspace is the run-local directory probe snapshots are written
// into.
type Workspace struct {
	Dir string

	mu      sync.Mutex
	counter int
}

// Create probes dir/tmp1, dir/tmp2, ... for the first name that does
// not exist and creates it.
func Create(dir string) (*Workspace, error) {
	for n := 1; n <= maxProbeAttempts; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("tmp%d", n))
		if err := os.Mkdir(candidate, 0o755); err == nil {
			return &Workspace{Dir: candidate, counter: 1}, nil
		} else if !os.IsExist(err) {
			return nil, lerrors.WorkspaceBusy(errors.Wrapf(err, "creating workspace %q", candidate))
		}
	}
	// Every sequential slot was taken: statistically, many instances
	// started at once. Break the tie with a random suffix instead of
	// probing forever.
	for attempt := 0; attempt < 8; attempt++ {
		candidate := filepath.Join(dir, fmt.Sprintf("tmp-%s", random.String(8)))
		if err := os.Mkdir(candidate, 0o755); err == nil {
			logging.Debugf("workspace: fell back to random name %q after %d collisions", candidate, maxProbeAttempts)
			return &Workspace{Dir: candidate, counter: 1}, nil
		} else if !os.IsExist(err) {
			return nil, lerrors.WorkspaceBusy(errors.Wrapf(err, "creating workspace %q", candidate))
		}
	}
	return nil, lerrors.WorkspaceBusy(errors.Errorf("could not create a workspace under %q", dir))
}

// Open wraps a preexisting directory (--tempdir) as a Workspace,
// without probing for a free name.
func Open(dir string) (*Workspace, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, lerrors.WorkspaceBusy(errors.Wrapf(err, "opening workspace %q", dir))
	}
	if !info.IsDir() {
		return nil, lerrors.WorkspaceBusy(errors.Errorf("%q is not a directory", dir))
	}
	return &Workspace{Dir: dir, counter: 1}, nil
}

// NextCounter returns the counter that the next numbered file (snapshot
// or oracle temp-prefix) will use, without consuming it.
func (w *Workspace) NextCounter() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.counter
}

// TempPrefix returns the path the oracle may use as a scratch-file
// prefix for the next probe, per spec §4.3: workspace/<next counter>.
func (w *Workspace) TempPrefix() string {
	return filepath.Join(w.Dir, fmt.Sprintf("%d", w.NextCounter()))
}

// Snapshot writes content to <dir>/[<counter>-]<tag><ext>. The counter
// is incremented iff numbered is true, and is consumed (advanced) only
// by a call with numbered=true, matching spec §4.2's "increments the
// counter iff numbered is true".
func (w *Workspace) Snapshot(tag, ext, content string, numbered bool) (path string, err error) {
	w.mu.Lock()
	n := w.counter
	if numbered {
		w.counter++
	}
	w.mu.Unlock()

	name := tag + ext
	if numbered {
		name = fmt.Sprintf("%d-%s", n, name)
	}
	path = filepath.Join(w.Dir, name)
	if err := writeFile(path, content); err != nil {
		return "", errors.Wrapf(err, "writing snapshot %q", path)
	}
	return path, nil
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

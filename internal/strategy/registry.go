// Package strategy holds the reduction strategies, each self-registered
// into a name-keyed registry the way backend/gzip registers itself with
// fs.Register(&fs.RegInfo{...}) — the driver looks a strategy up by its
// --strategy flag value instead of a hand-maintained switch.
package strategy

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/lithium-reducer/lithium/internal/engine"
	"github.com/lithium-reducer/lithium/internal/lerrors"
)

// Run executes a strategy against e with the driver's chunk-size/repeat
// configuration. Strategies that ignore chunking (the auxiliary ones)
// may ignore cfg.
type Run func(e *engine.Engine, cfg engine.Config) error

// Info describes one registered strategy.
type Info struct {
	Name string
	Run  Run
}

var (
	mu       sync.Mutex
	registry = map[string]*Info{}
)

// Register adds info to the registry. Called from each strategy file's
// init().
func Register(info *Info) {
	mu.Lock()
	defer mu.Unlock()
	registry[info.Name] = info
}

// Lookup returns the registered strategy named name, or a Usage error
// listing the known names.
func Lookup(name string) (*Info, error) {
	mu.Lock()
	defer mu.Unlock()
	if info, ok := registry[name]; ok {
		return info, nil
	}
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, lerrors.Usage(errors.Errorf("unknown strategy %q (known: %v)", name, names))
}

// Names returns the sorted list of registered strategy names.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

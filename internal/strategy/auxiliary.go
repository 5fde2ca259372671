package strategy

import (
	"github.com/lithium-reducer/lithium/internal/atom"
	"github.com/lithium-reducer/lithium/internal/engine"
	"github.com/lithium-reducer/lithium/internal/logging"
)

func init() {
	Register(&Info{Name: "check-only", Run: runCheckOnly})
	Register(&Info{Name: "remove-pair", Run: runRemovePair})
	Register(&Info{Name: "remove-adjacent-pairs", Run: runRemoveAdjacentPairs})
	Register(&Info{Name: "remove-substring", Run: runRemoveSubstring})
}

// runCheckOnly implements §4.5.6: probe the oracle once on the
// unreduced testcase and report the verdict, whatever it is. The driver
// dispatches check-only ahead of its usual VerifyInteresting gate, since
// reporting a negative verdict is this strategy's entire purpose.
func runCheckOnly(e *engine.Engine, cfg engine.Config) error {
	ok, err := e.Probe(e.Parts())
	if err != nil {
		return err
	}
	if ok {
		logging.Logf("Interesting.")
	} else {
		logging.Logf("Not interesting.")
	}
	return nil
}

// runRemovePair implements §4.5.6: try every pair (i, j), exiting on
// first success.
func runRemovePair(e *engine.Engine, cfg engine.Config) error {
	parts := e.Parts()
	n := len(parts)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			candidate := removeIndices(parts, i, j)
			ok, err := e.Probe(candidate)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
	return nil
}

// runRemoveAdjacentPairs implements §4.5.6: one pass trying every
// adjacent pair (i, i+1).
func runRemoveAdjacentPairs(e *engine.Engine, cfg engine.Config) error {
	i := 0
	for i+1 < e.Len() {
		parts := e.Parts()
		candidate := removeIndices(parts, i, i+1)
		ok, err := e.Probe(candidate)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		i++
	}
	return nil
}

// runRemoveSubstring implements §4.5.6: for each starting index, try
// progressively longer runs starting there, exiting on first success.
func runRemoveSubstring(e *engine.Engine, cfg engine.Config) error {
	for i := 0; i < e.Len(); i++ {
		for length := 1; i+length <= e.Len(); length++ {
			parts := e.Parts()
			candidate := append([]atom.Atom{}, parts[:i]...)
			candidate = append(candidate, parts[i+length:]...)
			ok, err := e.Probe(candidate)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
	return nil
}

func removeIndices(parts []atom.Atom, indices ...int) []atom.Atom {
	skip := make(map[int]bool, len(indices))
	for _, i := range indices {
		skip[i] = true
	}
	out := make([]atom.Atom, 0, len(parts)-len(indices))
	for i, a := range parts {
		if skip[i] {
			continue
		}
		out = append(out, a)
	}
	return out
}

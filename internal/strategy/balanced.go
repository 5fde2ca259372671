package strategy

import (
	"strings"

	"github.com/lithium-reducer/lithium/internal/atom"
	"github.com/lithium-reducer/lithium/internal/engine"
	"github.com/lithium-reducer/lithium/internal/logging"
)

func init() {
	Register(&Info{Name: "minimize-balanced", Run: runMinimizeBalanced})
}

// runMinimizeBalanced implements §4.5.3: balanced-bracket pair removal.
//
// The relocation sub-phase described in the original implementation is
// guarded by an always-true early continue, making the code after it
// unreachable; Design Note 4 says to omit dead behavior rather than
// port it, so this strategy never moves chunks across the braces it
// failed to remove, only skips past them.
func runMinimizeBalanced(e *engine.Engine, cfg engine.Config) error {
	return engine.RunRounds(e, cfg, minimizeBalancedRound)
}

// imbalance is the curly/square/paren bracket-count delta of one chunk,
// using the intended `[`/`]` semantics for square (Design Note 5).
type imbalance struct {
	curly, square, paren int
}

func (a imbalance) add(b imbalance) imbalance {
	return imbalance{a.curly + b.curly, a.square + b.square, a.paren + b.paren}
}

func (a imbalance) zero() bool { return a.curly == 0 && a.square == 0 && a.paren == 0 }

func (a imbalance) negative() bool { return a.curly < 0 || a.square < 0 || a.paren < 0 }

func chunkImbalance(chunk []atom.Atom) imbalance {
	s := atom.Join(chunk)
	return imbalance{
		curly:  strings.Count(s, "{") - strings.Count(s, "}"),
		square: strings.Count(s, "[") - strings.Count(s, "]"),
		paren:  strings.Count(s, "(") - strings.Count(s, ")"),
	}
}

func minimizeBalancedRound(e *engine.Engine, chunkSize int) (bool, error) {
	full := e.Parts()
	cs := engine.NewChunkSet(len(full), chunkSize)
	numChunks := len(cs.Chunks)
	if numChunks < 2 {
		return false, nil
	}

	imbalances := make([]imbalance, numChunks)
	for i := range cs.Chunks {
		imbalances[i] = chunkImbalance(cs.Atoms(full, i))
	}

	progressed := false
	lhs := cs.First()

	for lhs != -1 {
		if imbalances[lhs].zero() {
			ok, err := e.Probe(cs.Without(full, lhs))
			if err != nil {
				return progressed, err
			}
			if ok {
				cs.Remove(lhs)
				progressed = true
			}
			lhs = cs.Next(lhs)
			continue
		}

		acc := imbalances[lhs]
		rhs := -1
		for j := cs.Next(lhs); j != -1; j = cs.Next(j) {
			acc = acc.add(imbalances[j])
			if acc.negative() {
				break
			}
			if acc.zero() {
				rhs = j
				break
			}
		}

		if rhs == -1 {
			logging.Debugf("minimize-balanced cs=%d: no matching close for chunk %d", chunkSize, lhs)
			lhs = cs.Next(lhs)
			continue
		}

		ok, err := e.Probe(cs.Without(full, lhs, rhs))
		if err != nil {
			return progressed, err
		}
		if ok {
			cs.Remove(lhs, rhs)
			progressed = true
		}
		lhs = cs.Next(lhs)
	}

	return progressed, nil
}

package strategy

import (
	"github.com/lithium-reducer/lithium/internal/engine"
	"github.com/lithium-reducer/lithium/internal/logging"
)

func init() {
	Register(&Info{Name: "minimize-around", Run: runMinimizeAround})
}

// runMinimizeAround implements §4.5.2: surrounding-pair removal.
func runMinimizeAround(e *engine.Engine, cfg engine.Config) error {
	return engine.RunRounds(e, cfg, minimizeAroundRound)
}

func minimizeAroundRound(e *engine.Engine, chunkSize int) (bool, error) {
	full := e.Parts()
	cs := engine.NewChunkSet(len(full), chunkSize)
	numChunks := len(cs.Chunks)
	if numChunks < 3 {
		return false, nil
	}

	before, keep, after := 0, 1, 2
	progressed := false

	for after < numChunks {
		candidate := cs.Without(full, before, after)
		ok, err := e.Probe(candidate)
		if err != nil {
			return progressed, err
		}
		if ok {
			cs.Remove(before, after)
			progressed = true
			if prev := cs.Previous(keep); prev != -1 {
				before = prev
			} else {
				before = keep
				next := cs.Next(keep)
				if next == -1 {
					break
				}
				keep = next
			}
		} else {
			before = keep
			keep = after
		}
		next := cs.Next(keep)
		if next == -1 {
			break
		}
		after = next
	}

	removed, surviving := 0, 0
	for _, c := range cs.Chunks {
		if c.Removed {
			removed++
		} else {
			surviving++
		}
	}
	logging.Debugf("minimize-around cs=%d: %d removed, %d surviving", chunkSize, removed, surviving)
	return progressed, nil
}

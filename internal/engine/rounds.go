package engine

import "github.com/lithium-reducer/lithium/internal/logging"

// RoundFunc runs one round at the given chunk size against e and
// reports whether it made progress (removed or rewrote anything).
type RoundFunc func(e *Engine, chunkSize int) (progressed bool, err error)

// RunRounds implements the §4.5 preamble outer loop shared by the
// geometric strategies: start at min(maxChunk, largestPow2LE(len(parts))),
// repeat per cfg.Repeat after progress, otherwise halve towards
// finalChunk, stopping once a round at finalChunk makes no progress (or
// cfg.Repeat is Never and finalChunk was reached).
func RunRounds(e *Engine, cfg Config, round RoundFunc) error {
	finalChunk := cfg.MinChunk
	if finalChunk < 1 {
		finalChunk = 1
	}

	chunkSize := largestPow2LE(e.Len())
	if cfg.MaxChunk > 0 && cfg.MaxChunk < chunkSize {
		chunkSize = cfg.MaxChunk
	}
	if chunkSize < finalChunk {
		chunkSize = finalChunk
	}

	for {
		last := chunkSize == finalChunk
		progressed, err := round(e, chunkSize)
		if err != nil {
			return err
		}
		e.SnapshotRound(chunkSize)
		logging.Logf("round at chunk size %d: %s", chunkSize, roundVerb(progressed))

		repeatHere := progressed && (cfg.Repeat == RepeatAlways || (cfg.Repeat == RepeatLast && last))
		switch {
		case repeatHere:
			continue
		case last:
			return nil
		default:
			chunkSize = nextChunkSize(chunkSize, finalChunk)
		}
	}
}

func roundVerb(progressed bool) string {
	if progressed {
		return "made progress"
	}
	return "no change"
}

// nextChunkSize halves cs, clamping to finalChunk so the sequence
// always reaches exactly finalChunk instead of undershooting to zero
// (Design Note 7).
func nextChunkSize(cs, finalChunk int) int {
	cs /= 2
	if cs < finalChunk {
		cs = finalChunk
	}
	return cs
}

// largestPow2LE returns the largest power of two <= n, or 1 if n <= 1.
func largestPow2LE(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

package strategy

import (
	"strings"

	"github.com/lithium-reducer/lithium/internal/atom"
	"github.com/lithium-reducer/lithium/internal/engine"
	"github.com/lithium-reducer/lithium/internal/logging"
)

func init() {
	Register(&Info{Name: "minimize", Run: runMinimize})
}

// runMinimize implements §4.5.1: chunk removal. A finished pass at
// chunkSize == finalChunk == 1 with repeat != never guarantees
// 1-minimality.
func runMinimize(e *engine.Engine, cfg engine.Config) error {
	return engine.RunRounds(e, cfg, minimizeRound)
}

func minimizeRound(e *engine.Engine, chunkSize int) (bool, error) {
	parts := e.Parts()
	var summary strings.Builder
	progressed := false

	i := 0
	for i < len(parts) {
		end := i + chunkSize
		if end > len(parts) {
			end = len(parts)
		}
		candidate := make([]atom.Atom, 0, len(parts)-(end-i))
		candidate = append(candidate, parts[:i]...)
		candidate = append(candidate, parts[end:]...)

		ok, err := e.Probe(candidate)
		if err != nil {
			return progressed, err
		}
		if ok {
			summary.WriteByte('-')
			progressed = true
			parts = e.Parts()
			// i stays put: the window that follows slides down to i.
			continue
		}
		summary.WriteByte('S')
		i += chunkSize
	}
	logging.Debugf("minimize cs=%d: %s", chunkSize, summary.String())
	return progressed, nil
}

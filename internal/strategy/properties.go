package strategy

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lithium-reducer/lithium/internal/atom"
	"github.com/lithium-reducer/lithium/internal/engine"
	"github.com/lithium-reducer/lithium/internal/logging"
)

func init() {
	Register(&Info{Name: "replace-properties-by-globals", Run: runReplaceProperties})
}

// propertyRe matches a `.identifier` property access. Go's RE2 has no
// lookbehind, so the preceding-character check python expresses as
// `(?<=[\w\d_])` is done manually in findProperties against the byte
// just before each match — this lets consecutive accesses in the same
// atom (`x.foo.bar`) both match, since the dot itself is never
// consumed by the previous match.
var propertyRe = regexp.MustCompile(`\.(\w+)`)

const identChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"

// findProperties returns the captured identifier for every `.identifier`
// match in s that is immediately preceded by a word character.
func findProperties(s string) []string {
	var words []string
	for _, m := range propertyRe.FindAllStringSubmatchIndex(s, -1) {
		start := m[0]
		if start == 0 || strings.IndexByte(identChars, s[start-1]) < 0 {
			continue
		}
		words = append(words, s[m[2]:m[3]])
	}
	return words
}

// runReplaceProperties implements §4.5.4: per-identifier property-to-
// global rewriting, progress measured in characters removed.
func runReplaceProperties(e *engine.Engine, cfg engine.Config) error {
	finalChunk := cfg.MinChunk
	if finalChunk < 1 {
		finalChunk = 1
	}
	return engine.RunRounds(e, cfg, func(e *engine.Engine, chunkSize int) (bool, error) {
		return replacePropertiesRound(e, chunkSize, finalChunk)
	})
}

func replacePropertiesRound(e *engine.Engine, chunkSize, finalChunk int) (bool, error) {
	full := e.Parts()

	occurrences := map[string][]int{}
	var words []string
	for i, a := range full {
		for _, word := range findProperties(string(a)) {
			if _, ok := occurrences[word]; !ok {
				words = append(words, word)
			}
			occurrences[word] = append(occurrences[word], i)
		}
	}
	if len(occurrences) == 0 {
		return false, nil
	}
	sort.Strings(words)

	removedChars := 0
	progressed := false

	for _, word := range words {
		groups := map[int][]int{}
		var chunkIdxs []int
		for _, idx := range occurrences[word] {
			ci := idx / chunkSize
			if _, ok := groups[ci]; !ok {
				chunkIdxs = append(chunkIdxs, ci)
			}
			groups[ci] = append(groups[ci], idx)
		}
		sort.Ints(chunkIdxs)

		pattern := regexp.MustCompile(`[\w_.]+\.` + regexp.QuoteMeta(word))
		for _, ci := range chunkIdxs {
			idxs := groups[ci]
			if len(idxs) == 1 && chunkSize != finalChunk {
				continue
			}

			candidate := append([]atom.Atom{}, e.Parts()...)
			maybeRemoved := 0
			for _, idx := range idxs {
				old := string(candidate[idx])
				rewritten := pattern.ReplaceAllString(old, word)
				maybeRemoved += len(old) - len(rewritten)
				candidate[idx] = atom.Atom(rewritten)
			}

			ok, err := e.Probe(candidate)
			if err != nil {
				return progressed, err
			}
			if ok {
				progressed = true
				removedChars += maybeRemoved
			}
		}
	}

	logging.Debugf("replace-properties-by-globals cs=%d: %d characters removed", chunkSize, removedChars)
	return progressed, nil
}

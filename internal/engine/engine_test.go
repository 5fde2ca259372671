package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithium-reducer/lithium/internal/atom"
	"github.com/lithium-reducer/lithium/internal/workspace"
)

// containsOracle is an in-process Adapter stub standing in for an
// external oracle: interesting iff the candidate file contains needle.
type containsOracle struct {
	path   string
	needle string
	calls  int
}

func (o *containsOracle) Init([]string) error { return nil }

func (o *containsOracle) Interesting(_ []string, testcasePath, _ string) (bool, error) {
	o.calls++
	data, err := os.ReadFile(testcasePath)
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), o.needle), nil
}

func newTestEngine(t *testing.T, parts []string, needle string) (*Engine, *containsOracle) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "case.txt")

	atoms := make([]atom.Atom, len(parts))
	for i, p := range parts {
		atoms[i] = atom.Atom(p)
	}
	tc := &atom.Testcase{Parts: atoms, Ext: ".txt"}

	ws, err := workspace.Create(dir)
	require.NoError(t, err)
	o := &containsOracle{path: path, needle: needle}
	return New(path, tc, ws, o, nil), o
}

func TestProbeCommitsOnInteresting(t *testing.T) {
	e, o := newTestEngine(t, []string{"A\n", "X\n", "B\n"}, "X")

	candidate := []atom.Atom{"X\n"}
	ok, err := e.Probe(candidate)
	require.NoError(t, err)
	assert.True(t, ok, "expected candidate containing X to be interesting")
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, 1, e.TestCount())
	assert.Equal(t, 1, o.calls)
}

func TestProbeRollsBackOnBoring(t *testing.T) {
	e, _ := newTestEngine(t, []string{"A\n", "X\n", "B\n"}, "X")
	original := append([]atom.Atom{}, e.Parts()...)

	candidate := []atom.Atom{"A\n", "B\n"}
	ok, err := e.Probe(candidate)
	require.NoError(t, err)
	assert.False(t, ok, "expected candidate without X to be boring")
	assert.Equal(t, len(original), e.Len(), "parts not restored")
}

func TestVerifyInterestingFailsWhenOriginalIsBoring(t *testing.T) {
	e, _ := newTestEngine(t, []string{"A\n", "B\n"}, "X")
	assert.Error(t, e.VerifyInteresting())
}

func TestLargestPow2LE(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 2, 4: 4, 5: 4, 7: 4, 8: 8, 1000: 512}
	for n, want := range cases {
		assert.Equal(t, want, largestPow2LE(n), "largestPow2LE(%d)", n)
	}
}

func TestNextChunkSizeClampsToFinal(t *testing.T) {
	assert.Equal(t, 4, nextChunkSize(2, 4), "clamp up to final, not 0/1")
	assert.Equal(t, 4, nextChunkSize(8, 1))
}

func TestChunkSetNavigation(t *testing.T) {
	cs := NewChunkSet(10, 2)
	require.Len(t, cs.Chunks, 5)

	cs.Remove(1, 3)
	assert.Equal(t, 0, cs.First())
	assert.Equal(t, 2, cs.Next(0))
	assert.Equal(t, 4, cs.Next(2))
	assert.Equal(t, 2, cs.Previous(4))
	assert.False(t, cs.Surviving(1), "chunk 1 should be removed")
}

func TestChunkSetWithout(t *testing.T) {
	parts := []atom.Atom{"a", "b", "c", "d"}
	cs := NewChunkSet(len(parts), 2)
	out := cs.Without(parts, 0)
	assert.Equal(t, "cd", atom.Join(out))
}

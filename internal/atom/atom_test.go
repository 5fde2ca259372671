package atom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLinesRetainsTerminators(t *testing.T) {
	atoms, err := Tokenize("a\nb\nc", Line, "", "")
	require.NoError(t, err)
	require.Len(t, atoms, 3)
	assert.Equal(t, Atom("a\n"), atoms[0])
	assert.Equal(t, Atom("b\n"), atoms[1])
	assert.Equal(t, Atom("c"), atoms[2])
	assert.Equal(t, "a\nb\nc", Join(atoms))
}

func TestTokenizeCharsOneRunePerAtom(t *testing.T) {
	atoms, err := Tokenize("ab\ncd", Char, "", "")
	require.NoError(t, err)
	require.Len(t, atoms, 5)
	assert.Equal(t, "ab\ncd", Join(atoms))
}

func TestTokenizeSymbolsReproducesInput(t *testing.T) {
	input := "if (x) { y = z; }\n"
	atoms, err := Tokenize(input, Symbol, "", "")
	require.NoError(t, err)
	assert.Equal(t, input, Join(atoms))
	assert.Greater(t, len(atoms), 1)
}

func TestTokenizeUnknownModeErrors(t *testing.T) {
	_, err := Tokenize("x", Mode(99), "", "")
	assert.Error(t, err)
}

func TestReadSplitsDDBeginEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.js")
	content := "prefix();\nDDBEGIN\nvar x = 1;\nDDEND\nsuffix();\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tc, err := Read(path, Line, "", "")
	require.NoError(t, err)
	assert.Equal(t, "prefix();\nDDBEGIN\n", tc.Before)
	assert.Equal(t, "DDEND\nsuffix();\n", tc.After)
	assert.Equal(t, ".js", tc.Ext)
	assert.Equal(t, content, tc.Concat())
}

func TestReadWithoutMarkersTreatsWholeFileAsReducible(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.txt")
	content := "a\nb\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tc, err := Read(path, Line, "", "")
	require.NoError(t, err)
	assert.Empty(t, tc.Before)
	assert.Empty(t, tc.After)
	assert.Equal(t, content, tc.Concat())
}

func TestReadRejectsDDEndWithoutDDBegin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nDDEND\n"), 0o644))

	_, err := Read(path, Line, "", "")
	assert.Error(t, err)
}

func TestReadRejectsEmptyReducibleRegion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.txt")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	_, err := Read(path, Line, "", "")
	assert.Error(t, err)
}

// Package atom tokenizes a testcase file into an ordered sequence of
// opaque string fragments and tracks the immutable prefix/suffix
// context a DDBEGIN/DDEND section carves out of it.
package atom

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/lithium-reducer/lithium/internal/lerrors"
)

// Atom is the smallest reducible unit of a testcase: a line, a
// character, or a symbol-delimiter lexer token, depending on Mode.
type Atom string

// Mode selects the tokenizer used to split the reducible region into
// Atoms.
type Mode int

const (
	// Line splits on line boundaries, retaining terminators.
	Line Mode = iota
	// Char splits into one Atom per rune.
	Char
	// Symbol splits using the cutBefore/cutAfter lexer.
	Symbol
)

// DefaultCutBefore and DefaultCutAfter are the default character
// classes for Symbol tokenization.
const (
	DefaultCutBefore = "]}:"
	DefaultCutAfter  = "?=;{["
)

const (
	beginMarker = "DDBEGIN"
	endMarker   = "DDEND"
)

// Testcase is the file split into immutable Before/After context and a
// reducible Parts sequence. The invariant Before+concat(Parts)+After
// reproduces the file always holds; strategies only ever replace Parts.
type Testcase struct {
	Before string
	Parts  []Atom
	After  string
	Ext    string // file extension, including the dot, used for snapshot naming
}

// Concat returns the current file contents implied by t.
func (t *Testcase) Concat() string {
	var b strings.Builder
	b.WriteString(t.Before)
	for _, a := range t.Parts {
		b.WriteString(string(a))
	}
	b.WriteString(t.After)
	return b.String()
}

// Len returns the number of atoms in Parts.
func (t *Testcase) Len() int { return len(t.Parts) }

// Read loads path, splits out any DDBEGIN/DDEND section, and tokenizes
// the reducible region according to mode.
func Read(path string, mode Mode, cutBefore, cutAfter string) (*Testcase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lerrors.Unreadable(errors.Wrapf(err, "reading testcase %q", path))
	}
	before, reducible, after, err := splitMarkers(string(data))
	if err != nil {
		return nil, err
	}
	parts, err := Tokenize(reducible, mode, cutBefore, cutAfter)
	if err != nil {
		return nil, err
	}
	if mode == Char && (before != "" || after != "") && len(parts) > 0 {
		if last := parts[len(parts)-1]; last == "\n" {
			after = string(last) + after
			parts = parts[:len(parts)-1]
		}
	}
	if len(parts) == 0 {
		return nil, lerrors.Usage(errors.New("nothing to reduce: testcase has no atoms"))
	}
	ext := extOf(path)
	return &Testcase{Before: before, Parts: parts, After: after, Ext: ext}, nil
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	slash := strings.LastIndexAny(path, `/\`)
	if i <= slash {
		return ""
	}
	return path[i:]
}

// splitMarkers locates a DDBEGIN/DDEND section in content, if any, and
// returns the immutable before/after context plus the reducible middle.
// A DDEND without a prior DDBEGIN, or a DDBEGIN without a later DDEND,
// is an InvalidMarkers error.
func splitMarkers(content string) (before, reducible, after string, err error) {
	lines := splitLinesKeepEnds(content)
	beginIdx, endIdx := -1, -1
	for i, line := range lines {
		if beginIdx == -1 && strings.Contains(line, beginMarker) {
			beginIdx = i
		}
		if strings.Contains(line, endMarker) {
			endIdx = i
			break
		}
	}
	switch {
	case beginIdx == -1 && endIdx == -1:
		return "", content, "", nil
	case beginIdx == -1:
		return "", "", "", lerrors.InvalidMarkers(errors.New("found DDEND without a preceding DDBEGIN"))
	case endIdx == -1:
		return "", "", "", lerrors.InvalidMarkers(errors.New("found DDBEGIN without a following DDEND"))
	case endIdx <= beginIdx:
		return "", "", "", lerrors.InvalidMarkers(errors.New("DDEND appears before DDBEGIN"))
	}
	before = strings.Join(lines[:beginIdx+1], "")
	after = strings.Join(lines[endIdx:], "")
	reducible = strings.Join(lines[beginIdx+1:endIdx], "")
	return before, reducible, after, nil
}

// splitLinesKeepEnds splits s into lines, each retaining its trailing
// "\n" if present. A trailing partial line with no terminator is its
// own final element; an s with no content produces no elements.
func splitLinesKeepEnds(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// Tokenize splits reducible into Atoms according to mode. For Line and
// Char it ignores cutBefore/cutAfter.
func Tokenize(reducible string, mode Mode, cutBefore, cutAfter string) ([]Atom, error) {
	switch mode {
	case Line:
		return tokenizeLines(reducible), nil
	case Char:
		return tokenizeChars(reducible), nil
	case Symbol:
		return tokenizeSymbols(reducible, cutBefore, cutAfter), nil
	default:
		return nil, lerrors.Usage(errors.Errorf("unknown atom mode %d", mode))
	}
}

func tokenizeLines(s string) []Atom {
	lines := splitLinesKeepEnds(s)
	atoms := make([]Atom, len(lines))
	for i, l := range lines {
		atoms[i] = Atom(l)
	}
	return atoms
}

func tokenizeChars(s string) []Atom {
	if s == "" {
		return nil
	}
	atoms := make([]Atom, 0, len(s))
	for _, r := range s {
		atoms = append(atoms, Atom(string(r)))
	}
	return atoms
}

// tokenizeSymbols runs the cutBefore/cutAfter lexer once per line. The
// lexer is exhaustive: every byte of every line ends up in exactly one
// atom, so concatenation always reproduces the input exactly.
func tokenizeSymbols(s string, cutBefore, cutAfter string) []Atom {
	if cutBefore == "" {
		cutBefore = DefaultCutBefore
	}
	if cutAfter == "" {
		cutAfter = DefaultCutAfter
	}
	var atoms []Atom
	for _, line := range splitLinesKeepEnds(s) {
		atoms = append(atoms, lexLine(line, cutBefore, cutAfter)...)
	}
	return atoms
}

func lexLine(line, cutBefore, cutAfter string) []Atom {
	var atoms []Atom
	i := 0
	n := len(line)
	for i < n {
		start := i
		if strings.IndexByte(cutBefore, line[i]) >= 0 {
			i++
		}
		for i < n && strings.IndexByte(cutBefore, line[i]) < 0 && strings.IndexByte(cutAfter, line[i]) < 0 {
			i++
		}
		if i < n && strings.IndexByte(cutAfter, line[i]) >= 0 {
			i++
		}
		atoms = append(atoms, Atom(line[start:i]))
	}
	return atoms
}

// Join concatenates atoms back into a string.
func Join(atoms []Atom) string {
	var b strings.Builder
	for _, a := range atoms {
		b.WriteString(string(a))
	}
	return b.String()
}

// Package engine is the candidate harness and round-loop shared by the
// reduction strategies: it owns the mutable atom sequence, probes
// candidates through the oracle, and snapshots every attempt into the
// workspace, mirroring the save/assign/write/count/invoke/snapshot/
// restore sequence of original_source/lithium.py's interesting().
package engine

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/lithium-reducer/lithium/internal/atom"
	"github.com/lithium-reducer/lithium/internal/lerrors"
	"github.com/lithium-reducer/lithium/internal/logging"
	"github.com/lithium-reducer/lithium/internal/oracle"
	"github.com/lithium-reducer/lithium/internal/workspace"
)

// Repeat selects when a strategy's outer loop repeats a round at the
// same chunk size after it made progress.
type Repeat int

const (
	RepeatLast Repeat = iota
	RepeatAlways
	RepeatNever
)

// Config carries the driver's chunk-size and repeat-mode choices,
// shared by every strategy that uses RunRounds.
type Config struct {
	Repeat   Repeat
	MinChunk int
	MaxChunk int
}

// Engine owns the reducible atom sequence, the testcase's immutable
// context, and the counters a run reports in its final summary.
type Engine struct {
	path   string
	before string
	after  string
	ext    string
	parts  []atom.Atom

	ws         *workspace.Workspace
	oracleAdp  oracle.Adapter
	oracleArgs []string

	testCount int
	testTotal int
}

// New builds an Engine for one run. path is where the testcase is
// written on every probe.
func New(path string, tc *atom.Testcase, ws *workspace.Workspace, adp oracle.Adapter, oracleArgs []string) *Engine {
	return &Engine{
		path:       path,
		before:     tc.Before,
		after:      tc.After,
		ext:        tc.Ext,
		parts:      append([]atom.Atom{}, tc.Parts...),
		ws:         ws,
		oracleAdp:  adp,
		oracleArgs: oracleArgs,
	}
}

// Parts returns the current atom sequence. Strategies must treat the
// returned slice as read-only; only Probe mutates it.
func (e *Engine) Parts() []atom.Atom { return e.parts }

// Len returns len(Parts()).
func (e *Engine) Len() int { return len(e.parts) }

// TestCount and TestTotal report the oracle-record counters from §3.
func (e *Engine) TestCount() int { return e.testCount }
func (e *Engine) TestTotal() int { return e.testTotal }

// Concat returns before ++ concat(parts) ++ after for the current parts.
func (e *Engine) Concat() string {
	return e.before + atom.Join(e.parts) + e.after
}

// Probe implements §4.4: it tentatively replaces parts with candidate,
// writes the file, invokes the oracle, snapshots the attempt, and
// restores the prior parts on a negative verdict. parts equals
// candidate iff the returned verdict is true.
func (e *Engine) Probe(candidate []atom.Atom) (bool, error) {
	old := e.parts
	e.parts = candidate

	content := e.before + atom.Join(candidate) + e.after
	if err := writeFile(e.path, content); err != nil {
		e.parts = old
		return false, errors.Wrapf(err, "writing candidate testcase %q", e.path)
	}

	e.testCount++
	e.testTotal += len(candidate)

	tempPrefix := e.ws.TempPrefix()
	verdict, err := e.oracleAdp.Interesting(e.oracleArgs, e.path, tempPrefix)
	if err != nil {
		e.parts = old
		return false, err
	}

	tag := "boring"
	if verdict {
		tag = "interesting"
	}
	if _, err := e.ws.Snapshot(tag, e.ext, content, true); err != nil {
		logging.Debugf("engine: snapshot failed: %v", err)
	}

	if !verdict {
		e.parts = old
	}
	return verdict, nil
}

// SnapshotRound writes a numbered did-round-<cs> marker snapshot of the
// current parts, per §6's persisted-state list.
func (e *Engine) SnapshotRound(chunkSize int) {
	tag := didRoundTag(chunkSize)
	if _, err := e.ws.Snapshot(tag, e.ext, e.Concat(), true); err != nil {
		logging.Debugf("engine: round snapshot failed: %v", err)
	}
}

func didRoundTag(chunkSize int) string {
	return "did-round-" + strconv.Itoa(chunkSize)
}

// VerifyInteresting probes the unreduced parts and returns
// NotInteresting if the oracle rejects it, per the driver's §4.6 check.
func (e *Engine) VerifyInteresting() error {
	ok, err := e.Probe(e.parts)
	if err != nil {
		return err
	}
	if !ok {
		return lerrors.NotInteresting(errors.New("the unreduced testcase is not interesting"))
	}
	return nil
}

// WriteFinal writes the current parts to path, completing the driver's
// final-write step.
func (e *Engine) WriteFinal() error {
	return writeFile(e.path, e.Concat())
}

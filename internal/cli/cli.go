// Package cli parses Lithium's flat command line and drives one run
// end to end: read the testcase, create or reuse a workspace, verify
// the file is interesting, dispatch the chosen strategy, and print the
// summary. Flag definitions use spf13/pflag the way fstest/test_all's
// own main() defines its flag set, adapted from stdlib flag to pflag
// since this CLI takes a mix of named options and trailing positional
// oracle arguments pflag's SetInterspersed(false) handles directly.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/lithium-reducer/lithium/internal/atom"
	"github.com/lithium-reducer/lithium/internal/engine"
	"github.com/lithium-reducer/lithium/internal/lerrors"
	"github.com/lithium-reducer/lithium/internal/logging"
	"github.com/lithium-reducer/lithium/internal/oracle"
	"github.com/lithium-reducer/lithium/internal/strategy"
	"github.com/lithium-reducer/lithium/internal/workspace"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// Options is the parsed command line.
type Options struct {
	Char       bool
	Symbols    bool
	CutBefore  string
	CutAfter   string
	Strategy   string
	Repeat     string
	Min        int
	Max        int
	Testcase   string
	TempDir    string
	OracleInit bool
	Verbose    bool
	Quiet      bool
	ShowHelp   bool
	ShowVer    bool

	Oracle     string
	OracleArgs []string
}

// Parse builds the flag set and parses argv (excluding argv[0]).
func Parse(argv []string) (*Options, error) {
	fs := pflag.NewFlagSet("lithium", pflag.ContinueOnError)
	fs.SetInterspersed(false)

	opt := &Options{}
	fs.BoolVarP(&opt.Char, "char", "c", false, "split the testcase into character atoms")
	fs.BoolVarP(&opt.Symbols, "symbols", "s", false, "split the testcase into symbol-delimiter atoms")
	fs.StringVar(&opt.CutBefore, "cut-before", atom.DefaultCutBefore, "character class a symbol atom may start with")
	fs.StringVar(&opt.CutAfter, "cut-after", atom.DefaultCutAfter, "character class a symbol atom may end with")
	fs.StringVar(&opt.Strategy, "strategy", "minimize", "reduction strategy to run")
	fs.StringVar(&opt.Repeat, "repeat", "last", "repeat mode: always, last, or never")
	fs.IntVar(&opt.Min, "min", 1, "minimum chunk size (power of two)")
	fs.IntVar(&opt.Max, "max", 0, "maximum chunk size (power of two); 0 means unbounded")
	var chunksize int
	fs.IntVar(&chunksize, "chunksize", 0, "shortcut for --min=N --max=N --repeat=never")
	fs.StringVar(&opt.Testcase, "testcase", "", "path to the testcase file, overriding the positional argument")
	fs.StringVar(&opt.TempDir, "tempdir", "", "preexisting directory to use as the workspace")
	fs.BoolVar(&opt.OracleInit, "oracle-init", false, "invoke the oracle's one-time init hook before reducing")
	fs.BoolVarP(&opt.Verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVarP(&opt.Quiet, "quiet", "q", false, "restrict logging to errors")
	fs.BoolVarP(&opt.ShowHelp, "help", "h", false, "show usage and exit")
	fs.BoolVar(&opt.ShowVer, "version", false, "print the version and exit")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: lithium [options] oracle [oracle-args...] testcase-file")
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		return nil, lerrors.Usage(err)
	}

	if opt.ShowHelp || opt.ShowVer {
		return opt, nil
	}

	if chunksize != 0 {
		opt.Min, opt.Max, opt.Repeat = chunksize, chunksize, "never"
	}

	args := fs.Args()
	if opt.Testcase == "" {
		if len(args) == 0 {
			return nil, lerrors.Usage(errors.New("missing oracle argument"))
		}
		opt.Testcase = args[len(args)-1]
		args = args[:len(args)-1]
	}
	if len(args) == 0 {
		return nil, lerrors.Usage(errors.New("missing oracle argument"))
	}
	opt.Oracle = args[0]
	opt.OracleArgs = args[1:]

	if !isPowerOfTwo(opt.Min) {
		return nil, lerrors.Usage(errors.Errorf("--min=%d is not a power of two", opt.Min))
	}
	if opt.Max != 0 && !isPowerOfTwo(opt.Max) {
		return nil, lerrors.Usage(errors.Errorf("--max=%d is not a power of two", opt.Max))
	}

	return opt, nil
}

func isPowerOfTwo(n int) bool {
	if n <= 0 {
		return false
	}
	return n&(n-1) == 0
}

func (o *Options) mode() atom.Mode {
	switch {
	case o.Char:
		return atom.Char
	case o.Symbols:
		return atom.Symbol
	default:
		return atom.Line
	}
}

func (o *Options) repeatMode() (engine.Repeat, error) {
	switch o.Repeat {
	case "always":
		return engine.RepeatAlways, nil
	case "last":
		return engine.RepeatLast, nil
	case "never":
		return engine.RepeatNever, nil
	default:
		return 0, lerrors.Usage(errors.Errorf("--repeat=%q must be always, last, or never", o.Repeat))
	}
}

// Run executes the full driver sequence of §4.6 against stderr-bound
// logging, returning an error (nil on normal completion) that the
// caller maps to the process exit code.
func Run(argv []string, stdout io.Writer) error {
	opt, err := Parse(argv)
	if err != nil {
		return err
	}
	if opt.ShowHelp {
		fmt.Fprintln(stdout, "usage: lithium [options] oracle [oracle-args...] testcase-file")
		return nil
	}
	if opt.ShowVer {
		fmt.Fprintln(stdout, "lithium", Version)
		return nil
	}

	logging.SetVerbose(opt.Verbose)
	logging.SetQuiet(opt.Quiet)

	repeat, err := opt.repeatMode()
	if err != nil {
		return err
	}

	tc, err := atom.Read(opt.Testcase, opt.mode(), opt.CutBefore, opt.CutAfter)
	if err != nil {
		return err
	}

	var ws *workspace.Workspace
	if opt.TempDir != "" {
		ws, err = workspace.Open(opt.TempDir)
	} else {
		ws, err = workspace.Create(".")
	}
	if err != nil {
		return err
	}

	if logFile, ferr := os.Create(ws.Dir + "/run.log"); ferr == nil {
		logging.AddFileOutput(logFile)
	}

	logging.Logf("testcase has %d atoms", tc.Len())

	adp := oracle.New(opt.Oracle)
	if opt.OracleInit {
		if err := adp.Init(opt.OracleArgs); err != nil {
			return err
		}
	}

	eng := engine.New(opt.Testcase, tc, ws, adp, opt.OracleArgs)

	info, err := strategy.Lookup(opt.Strategy)
	if err != nil {
		return err
	}

	// check-only reports whatever verdict the oracle gives and exits
	// cleanly either way, so it runs ahead of the usual "the unreduced
	// testcase must already be interesting" gate below.
	if opt.Strategy == "check-only" {
		return info.Run(eng, engine.Config{})
	}

	if err := eng.VerifyInteresting(); err != nil {
		return err
	}
	if _, err := ws.Snapshot("original", tc.Ext, eng.Concat(), false); err != nil {
		logging.Debugf("cli: could not snapshot original: %v", err)
	}

	initialLen := eng.Len()
	cfg := engine.Config{Repeat: repeat, MinChunk: opt.Min, MaxChunk: opt.Max}
	if err := info.Run(eng, cfg); err != nil {
		return err
	}

	if err := eng.WriteFinal(); err != nil {
		return errors.Wrap(err, "writing final testcase")
	}

	printSummary(stdout, opt, initialLen, eng)
	return nil
}

func printSummary(w io.Writer, opt *Options, initialLen int, eng *engine.Engine) {
	fmt.Fprintln(w, "Lithium is done!")
	if opt.Strategy == "minimize" && opt.Min == 1 && opt.Repeat != "never" {
		fmt.Fprintln(w, "  Removing any single atom from the final file makes it uninteresting!")
	}
	fmt.Fprintf(w, "  Initial size: %d atoms\n", initialLen)
	fmt.Fprintf(w, "  Final size: %d atoms\n", eng.Len())
	fmt.Fprintf(w, "  Tests performed: %d\n", eng.TestCount())
	fmt.Fprintf(w, "  Test total: %d atoms\n", eng.TestTotal())
}

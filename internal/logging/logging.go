// Package logging is a thin leveled wrapper over logrus, mirroring the
// Debugf/Logf/Errorf/Fatalf call shape used throughout the teacher
// repo's own tooling (fs.Debugf, fs.Logf, fs.Fatalf).
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
}

// SetVerbose switches between Debug and Info levels.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// SetQuiet restricts output to errors and fatal messages only.
func SetQuiet(quiet bool) {
	if quiet {
		log.SetLevel(logrus.ErrorLevel)
	}
}

// AddFileOutput tees log output to w in addition to stderr, used by
// the driver to keep a run.log inside the workspace.
func AddFileOutput(w io.Writer) {
	log.SetOutput(io.MultiWriter(os.Stderr, w))
}

// Debugf logs a debug-level message, shown only with -v/--verbose.
func Debugf(format string, args ...interface{}) { log.Debugf(format, args...) }

// Logf logs an info-level progress message.
func Logf(format string, args ...interface{}) { log.Infof(format, args...) }

// Errorf logs an error without aborting the process.
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }

// Fatalf logs an error and terminates the process with exit code 1.
// Callers that need a taxonomy-specific exit code should instead
// return an internal/lerrors error up to cmd/lithium.
func Fatalf(format string, args ...interface{}) { log.Fatalf(format, args...) }

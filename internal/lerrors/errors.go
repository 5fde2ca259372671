// Package lerrors defines Lithium's error taxonomy (spec §7): a small
// set of typed errors, each carrying the process exit code its kind
// maps to, each wrapping an underlying cause the way the corpus wraps
// errors with github.com/pkg/errors.
package lerrors

import (
	"errors"
	"fmt"
)

// Kind identifies one of the taxonomy's error categories.
type Kind int

const (
	KindUsage Kind = iota
	KindUnreadable
	KindInvalidMarkers
	KindNotInteresting
	KindOracleFault
	KindWorkspaceBusy
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "Usage"
	case KindUnreadable:
		return "Unreadable"
	case KindInvalidMarkers:
		return "InvalidMarkers"
	case KindNotInteresting:
		return "NotInteresting"
	case KindOracleFault:
		return "OracleFault"
	case KindWorkspaceBusy:
		return "WorkspaceBusy"
	default:
		return "Unknown"
	}
}

// ExitCode returns the process exit code for k, per spec §6/§7: usage
// errors and a busy workspace are 2, everything else that aborts the
// run is 1. 0 is reserved for normal completion.
func (k Kind) ExitCode() int {
	switch k {
	case KindUsage, KindWorkspaceBusy:
		return 2
	default:
		return 1
	}
}

// Error is a taxonomy-tagged error wrapping an underlying cause.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Cause exposes the wrapped cause to the corpus's causer-style walkers.
func (e *Error) Cause() error { return e.cause }

func wrap(k Kind, cause error) *Error { return &Error{Kind: k, cause: cause} }

// Usage wraps cause as a Usage error (invalid flags, unknown strategy,
// non-power-of-two chunk bounds, missing testcase, empty testcase).
func Usage(cause error) error { return wrap(KindUsage, cause) }

// Unreadable wraps cause as an Unreadable error (testcase file cannot
// be opened).
func Unreadable(cause error) error { return wrap(KindUnreadable, cause) }

// InvalidMarkers wraps cause as an InvalidMarkers error (malformed
// DDBEGIN/DDEND section).
func InvalidMarkers(cause error) error { return wrap(KindInvalidMarkers, cause) }

// NotInteresting wraps cause as a NotInteresting error (the unreduced
// testcase fails the oracle).
func NotInteresting(cause error) error { return wrap(KindNotInteresting, cause) }

// OracleFault wraps cause as an OracleFault error (the oracle adapter
// could not be loaded, or raised during a probe).
func OracleFault(cause error) error { return wrap(KindOracleFault, cause) }

// WorkspaceBusy wraps cause as a WorkspaceBusy error (no workspace
// directory could be created after reasonable attempts).
func WorkspaceBusy(cause error) error { return wrap(KindWorkspaceBusy, cause) }

// ExitCode returns the exit code for err if it (or something it wraps)
// is an *Error, else 1 for an uncategorized failure.
func ExitCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind.ExitCode()
	}
	return 1
}

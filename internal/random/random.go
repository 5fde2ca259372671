// Package random generates short, collision-resistant strings used as
// a fallback suffix when the workspace directory probe in
// internal/workspace runs out of sequential names to try.
package random

import (
	"crypto/rand"

	"github.com/pkg/errors"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// String returns a random string of length n drawn from an
// alphanumeric alphabet. Two calls never return the same string in
// practice (the pool has 62^n possibilities).
func String(n int) string {
	out := make([]byte, n)
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read on a supported platform does not fail; if it
		// ever does there is no sane fallback for a unique-name source.
		panic(errors.Wrap(err, "random: failed to read entropy"))
	}
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out)
}

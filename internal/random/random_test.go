package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringLength(t *testing.T) {
	for i := 0; i < 20; i++ {
		s := String(i)
		assert.Equal(t, i, len(s))
	}
}

func TestStringDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		s := String(8)
		assert.False(t, seen[s], "duplicate random string %q", s)
		seen[s] = true
	}
}

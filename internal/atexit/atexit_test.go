package atexit

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSignal struct{}

func (*fakeSignal) String() string { return "fake" }
func (*fakeSignal) Signal()        {}

var _ os.Signal = (*fakeSignal)(nil)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 128+2, exitCode(syscall.SIGINT))
	assert.Equal(t, 128+15, exitCode(syscall.SIGTERM))
	assert.Equal(t, UncategorizedError, exitCode(&fakeSignal{}))
}

func TestRegisterRunsOnHandle(t *testing.T) {
	var ran bool
	Register(func() { ran = true })
	runHooks()
	assert.True(t, ran, "registered hook did not run")
}

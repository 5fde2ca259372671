package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/lithium-reducer/lithium/internal/strategy"
)

func TestParseRejectsNonPowerOfTwoMin(t *testing.T) {
	_, err := Parse([]string{"--min=3", "oracle.sh", "case.txt"})
	assert.Error(t, err)
}

func TestParseChunksizeShortcut(t *testing.T) {
	opt, err := Parse([]string{"--chunksize=4", "oracle.sh", "case.txt"})
	require.NoError(t, err)
	assert.Equal(t, 4, opt.Min)
	assert.Equal(t, 4, opt.Max)
	assert.Equal(t, "never", opt.Repeat)
}

func TestParseSplitsOracleArgsAndTestcase(t *testing.T) {
	opt, err := Parse([]string{"oracle.sh", "arg1", "arg2", "case.txt"})
	require.NoError(t, err)
	assert.Equal(t, "oracle.sh", opt.Oracle)
	assert.Equal(t, []string{"arg1", "arg2"}, opt.OracleArgs)
	assert.Equal(t, "case.txt", opt.Testcase)
}

func TestParseTestcaseFlagOverridesPositional(t *testing.T) {
	opt, err := Parse([]string{"--testcase=explicit.txt", "oracle.sh"})
	require.NoError(t, err)
	assert.Equal(t, "explicit.txt", opt.Testcase)
	assert.Equal(t, "oracle.sh", opt.Oracle)
}

func TestRunEndToEndMinimize(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("oracle is a POSIX shell script in this test")
	}
	dir := t.TempDir()

	testcase := filepath.Join(dir, "case.txt")
	require.NoError(t, os.WriteFile(testcase, []byte("A\nB\nX\nC\nD\n"), 0o644))

	oraclePath := filepath.Join(dir, "oracle.sh")
	script := "#!/bin/sh\ngrep -q X \"$LITHIUM_TESTCASE\"\n"
	require.NoError(t, os.WriteFile(oraclePath, []byte(script), 0o755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	var stdout bytes.Buffer
	err = Run([]string{"--min=1", "--max=1", "--repeat=last", oraclePath, testcase}, &stdout)
	require.NoError(t, err)

	final, err := os.ReadFile(testcase)
	require.NoError(t, err)
	assert.Equal(t, "X", strings.TrimSpace(string(final)))
	assert.Contains(t, stdout.String(), "Lithium is done!")
}

func TestRunCheckOnlyNotInterestingExitsCleanly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("oracle is a POSIX shell script in this test")
	}
	dir := t.TempDir()

	testcase := filepath.Join(dir, "case.txt")
	require.NoError(t, os.WriteFile(testcase, []byte("A\nB\nC\n"), 0o644))

	oraclePath := filepath.Join(dir, "oracle.sh")
	script := "#!/bin/sh\ngrep -q X \"$LITHIUM_TESTCASE\"\n"
	require.NoError(t, os.WriteFile(oraclePath, []byte(script), 0o755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	var stdout bytes.Buffer
	err = Run([]string{"--strategy=check-only", oraclePath, testcase}, &stdout)
	require.NoError(t, err, "check-only must exit cleanly regardless of the oracle's verdict")
}

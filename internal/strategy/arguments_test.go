package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceArgumentsByGlobalsNamedFunction(t *testing.T) {
	e := newTestEngine(t,
		[]string{
			"function foo(a,b) {\n",
			"  list = a + b;\n",
			"}\n",
			"foo(2, 3)\n",
		},
		"function foo()", "a = 2", "b = 3",
	)

	progressed, err := replaceArgumentsRound(e)
	require.NoError(t, err)
	assert.True(t, progressed, "expected phase 1 to succeed and report progress")

	got := joinParts(e)
	assert.Contains(t, got, "function foo() {")
	assert.Contains(t, got, "a = 2;")
	assert.Contains(t, got, "b = 3;")
}

func TestZeroArgFunctionDefIsNotMatched(t *testing.T) {
	assert.False(t, namedFuncDefRe.MatchString("function init() {"),
		"a zero-argument definition must not match: rewriting it is a no-op candidate that Probe reports as perpetual progress")
}

func TestReplaceArgumentsByGlobalsSkipsZeroArgFunction(t *testing.T) {
	e := newTestEngine(t,
		[]string{
			"function init() {\n",
			"  setup();\n",
			"}\n",
			"init()\n",
		},
		"function init()",
	)

	progressed, err := replaceArgumentsRound(e)
	require.NoError(t, err)
	assert.False(t, progressed, "a zero-argument definition has nothing to rewrite")
}

func TestScanArgumentsFindsNamedFunctionAndCall(t *testing.T) {
	e := newTestEngine(t, []string{
		"function foo(a,b) {\n",
		"}\n",
		"foo(2, 3)\n",
	})
	defs, calls, iifes := scanArguments(e.Parts())
	_, ok := defs["foo"]
	assert.True(t, ok, "expected a definition for foo")
	assert.Len(t, calls["foo"], 2, "the definition's own foo(a,b) is recorded as a use alongside the call")
	assert.Empty(t, iifes)
}

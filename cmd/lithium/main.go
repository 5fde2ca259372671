// Command lithium is an automated testcase reducer: given an oracle
// program and a testcase file, it repeatedly probes the oracle on
// candidate subsequences of the file and converges on a locally
// minimal interesting subsequence.
package main

import (
	"os"

	"github.com/lithium-reducer/lithium/internal/atexit"
	"github.com/lithium-reducer/lithium/internal/cli"
	"github.com/lithium-reducer/lithium/internal/lerrors"
	"github.com/lithium-reducer/lithium/internal/logging"
)

func main() {
	stop := atexit.Handle()
	defer stop()

	if err := cli.Run(os.Args[1:], os.Stdout); err != nil {
		logging.Errorf("%v", err)
		os.Exit(lerrors.ExitCode(err))
	}
}

package main

import (
	"os"

	"github.com/odvcencio/placard/pkg/logging"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command and folds every failure path into the
// stable exit contract: anything that errors before or after the window
// exits 100.
func run(args []string) int {
	cmd, opts := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		logging.Errorf("%v", err)
		return 100
	}
	return opts.exit
}

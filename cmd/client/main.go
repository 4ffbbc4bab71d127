package main

import (
	"fmt"
	"os"

	"github.com/iudanet/bizkeeper/internal/client/cli"
	"github.com/iudanet/bizkeeper/internal/client/iocli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	version := fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)

	if err := cli.NewRootCommand(version, iocli.NewStdio()).Execute(); err != nil {
		os.Exit(1)
	}
}

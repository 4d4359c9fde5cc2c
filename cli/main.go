package main

import (
	"fmt"
	"os"

	"github.com/trebuchet-org/rt-deploy/internal/cli"
	"github.com/trebuchet-org/rt-deploy/internal/cli/render"
	"github.com/trebuchet-org/rt-deploy/internal/config"
)

// Set by the linker: -X main.version=... -X main.commit=... -X main.date=...
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render.FormatError(err.Error()))
		os.Exit(1)
	}
}

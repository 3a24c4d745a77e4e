// Package main provides the entry point for the stringsvc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/0dillon/HNG1/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

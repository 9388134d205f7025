// Package main provides the hivetrace command line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/hivetrace/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

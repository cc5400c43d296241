// Package main provides the bindcheck CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/bindcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

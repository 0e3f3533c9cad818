// Package main provides the CLI for the ruler dataset validator.
package main

import (
	"os"

	"github.com/kieroneil/ruler/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

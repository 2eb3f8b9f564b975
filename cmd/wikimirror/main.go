// Package main is the entry point for the wikimirror CLI tool.
package main

import (
	"os"

	"wikimirror/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the hidewatch CLI.
package main

import (
	"os"

	"github.com/hidewatch/hidewatch/cmd/hidewatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

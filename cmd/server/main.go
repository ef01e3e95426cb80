// Package main is the entry point of the evently API server.
package main

import (
	"fmt"
	"os"
)

// Build information set with -ldflags.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", orNA(buildVersion), orNA(buildCommit), orNA(buildDate))

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

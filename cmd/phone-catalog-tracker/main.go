// Package main is the entry point for phone-catalog-tracker.
package main

import (
	"os"

	"github.com/mhodgson/phone-catalog-tracker/cmd/phone-catalog-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

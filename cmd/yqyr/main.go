// Package main is the entry point of the yqyr CLI.
package main

import (
	"os"

	"github.com/flight-search/yqyr-surcharge-engine/cmd/yqyr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

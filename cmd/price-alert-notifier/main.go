// Package main is the entry point for the price-alert-notifier.
package main

import (
	"os"

	"github.com/donaldgifford/price-alert-notifier/cmd/price-alert-notifier/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

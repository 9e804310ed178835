// Command uval applies unobtrusive validation setup to HTML documents.
package main

import (
	"fmt"
	"os"
)

const appName = "uval"

// Set at build time with -ldflags "-X main.version=...".
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

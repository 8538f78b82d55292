// Command mcscan loads and checks the scanner configuration.
//
// Usage:
//
//	mcscan --config config.toml check
//	mcscan --config config.toml init --force
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
}

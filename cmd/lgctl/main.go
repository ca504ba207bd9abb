// Command lgctl is the lg-render developer harness: a thin CLI over the
// rendering engine for local use (render/validate/cache) plus an mcp
// subcommand that runs the JSON-RPC server for editor/agent integration.
package main

import (
	"fmt"
	"os"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	if err := NewLgctlCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

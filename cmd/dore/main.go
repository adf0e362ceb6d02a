// ABOUTME: CLI entry point for dore, an interactive line and NDJSON picker
// ABOUTME: Runs the root command and turns its outcome into an exit status

package main

import "os"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(execute(newApp(os.Stdout, os.Stderr, openTTY), os.Args[1:]))
}

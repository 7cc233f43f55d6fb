// Command library manages a small library's catalog, membership and lending from the command line.
//
// Usage:
//
//	library [global flags] <command> [command flags]
//
// Every command loads the data directory first. Commands that change state save it afterwards.
// Run "library help" for the list of commands.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

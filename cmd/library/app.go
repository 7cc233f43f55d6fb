package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"

	"github.com/AntonStoeckl/library-catalog-go/library"
	"github.com/AntonStoeckl/library-catalog-go/library/flatfile"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// app is what a command works with. It is created per invocation.
type app struct {
	lib    *library.Library
	store  *flatfile.Store
	stdout io.Writer
	stderr io.Writer
}

// run executes one command: load all, run, and save all if the command changes state.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, rest, err := parseGlobalFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}

	if err != nil {
		printError(stderr, err)
		return exitUsage
	}

	if cfg.NoColor {
		colorEnabled = false
	}

	if len(rest) == 0 || rest[0] == "help" {
		printUsage(stderr, nil)
		if len(rest) == 0 {
			return exitUsage
		}

		return exitOK
	}

	cmd, ok := findCommand(rest[0])
	if !ok {
		printError(stderr, fmt.Errorf("%w: unknown command %q", errUsage, rest[0]))
		printUsage(stderr, nil)

		return exitUsage
	}

	obs, shutdown := cfg.newObservabilityConfig(ctx, stderr)
	defer shutdown()

	lib, store, err := newEngine(cfg, obs)
	if err != nil {
		printError(stderr, err)
		return exitFailure
	}

	a := &app{lib: lib, store: store, stdout: stdout, stderr: stderr}

	report, err := store.LoadAll(ctx, lib)
	if err != nil {
		printError(stderr, err)
		return exitFailure
	}

	if skipped := report.SkippedCount(); skipped > 0 {
		_, _ = fmt.Fprintf(stderr, "%s %d malformed line(s) skipped while loading %s\n", Warning("[~]"), skipped, store.DataDir())
	}

	if err := cmd.run(ctx, a, rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		printError(stderr, err)
		if errors.Is(err, errUsage) {
			return exitUsage
		}

		return exitFailure
	}

	if !cmd.mutating {
		return exitOK
	}

	if err := store.SaveAll(ctx, lib); err != nil {
		printError(stderr, err)
		return exitFailure
	}

	return exitOK
}

// flagSet creates a flag set for a command that reports parse errors on stderr.
func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	return fs
}

// parse parses args and marks parse failures as usage errors.
func (a *app) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}

		return fmt.Errorf("%w: %s: %w", errUsage, fs.Name(), err)
	}

	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected arguments %v", errUsage, fs.Name(), fs.Args())
	}

	return nil
}

// requireFlags fails with a usage error for the first pair of flag name and value where the value is empty.
func requireFlags(fs *flag.FlagSet, nameValuePairs ...string) error {
	for i := 0; i+1 < len(nameValuePairs); i += 2 {
		if nameValuePairs[i+1] == "" {
			return fmt.Errorf("%w: %s: -%s is required", errUsage, fs.Name(), nameValuePairs[i])
		}
	}

	return nil
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stdout, format, args...)
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error("[!]"), err)
}

// printUsage lists the commands. With a non-nil global flag set, the global flags are listed too.
func printUsage(w io.Writer, global *flag.FlagSet) {
	_, _ = fmt.Fprintf(w, "%s\n\n", Header("Usage: library [global flags] <command> [command flags]"))
	_, _ = fmt.Fprintln(w, "Commands:")

	for _, cmd := range slices.Concat(commands, []command{{name: "help", summary: "show this help"}}) {
		_, _ = fmt.Fprintf(w, "  %-14s %s\n", cmd.name, cmd.summary)
	}

	if global != nil {
		_, _ = fmt.Fprintln(w, "\nGlobal flags:")
		global.PrintDefaults()
	}

	_, _ = fmt.Fprintln(w, "\nRun 'library <command> -h' for the flags of a command.")
}

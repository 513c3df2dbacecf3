// Package main is the entry point for the jitc CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/jitc/cmd/jitc/commands"
	"go.trai.ch/jitc/internal/app"
	_ "go.trai.ch/jitc/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		printError(stderr, err)
		return 1
	}
	defer func() { _ = components.Close() }()

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

type metadataError interface {
	Metadata() map[string]any
}

// printError writes the error followed by the metadata attached anywhere in
// its chain, such as the compiler command and its stderr.
func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)

	seen := make(map[string]bool)
	for e := err; e != nil; e = errors.Unwrap(e) {
		m, ok := e.(metadataError)
		if !ok {
			continue
		}
		meta := m.Metadata()
		for _, key := range slices.Sorted(maps.Keys(meta)) {
			if seen[key] {
				continue
			}
			seen[key] = true
			_, _ = fmt.Fprintf(w, "  %s: %v\n", key, meta[key])
		}
	}
}

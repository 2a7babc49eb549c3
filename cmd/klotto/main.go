// Package main provides the entry point for the klotto CLI.
//
// klotto is a command-line toolkit for the Korean Lotto 6/45 game.
// It maintains a local database of official draw results, generates
// number combinations, and analyzes them against the draw history.
//
// Usage:
//
//	klotto sync
//	klotto generate --sets 5
//	klotto stats
//
// See --help for all available options.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// main is the entry point for klotto.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	Execute(ctx)
}

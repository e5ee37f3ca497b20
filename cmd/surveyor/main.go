// Package main provides the entry point for the surveyor CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/btrdirectory/surveyor/cmd/surveyor/cmd"
	"github.com/btrdirectory/surveyor/pkg/logging"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := cmd.NewRootCommand(version, commit)
	if err := root.ExecuteContext(ctx); err != nil {
		logging.Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

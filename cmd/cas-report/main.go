package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/casparian/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    "cas-report",
		Usage:   "Analyze casparian quality-gate run logs",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			digestCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}

//nolint:wrapcheck
package main

import (
	"context"
	"os"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/casparian/internal/coverage"
)

func coverageCommand() *cli.Command {
	return &cli.Command{
		Name:      "coverage",
		Usage:     "Report the coverage percentage from a Cobertura XML file",
		ArgsUsage: "[report.xml ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			pct, ok := coverage.Percent(cmd.Args().Slice()...)

			meta := map[string]any{
				"found": ok,
			}
			if ok {
				meta["percent"] = pct
			}

			formatter, err := format.GetFormatter(cmd.String("format"))
			if err != nil {
				return err
			}

			data := &format.Data{
				Object: "coverage",
				Meta:   meta,
			}

			if err := formatter.PrintAll([]*format.Data{data}, os.Stdout); err != nil {
				return err
			}

			if !ok {
				return cli.Exit("no coverage data", 1)
			}

			return nil
		},
	}
}

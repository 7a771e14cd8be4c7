//nolint:wrapcheck
package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/casparian"
	"github.com/farcloser/casparian/internal/config"
	"github.com/farcloser/casparian/internal/integration/git"
	"github.com/farcloser/casparian/internal/report"
	"github.com/farcloser/casparian/internal/rules"
	"github.com/farcloser/casparian/version"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Run quality gates over a Python project",
		ArgsUsage: "[path ...]",
		Flags: []cli.Flag{
			// Gate selection.
			&cli.StringFlag{
				Name:    "gates",
				Aliases: []string{"G"},
				Usage:   "Comma-separated gates or presets: all, static, lint, types, security, coverage, tests",
				Value:   "all",
			},
			&cli.BoolFlag{
				Name:  "skip-tests",
				Usage: "Skip the pytest gate even when selected",
			},

			// Policy.
			&cli.IntFlag{
				Name:    "min-cov",
				Aliases: []string{"m"},
				Usage:   "Minimum coverage percentage (0 disables the threshold)",
				Value:   -1,
			},
			&cli.StringFlag{
				Name:  "rule-style",
				Usage: "Rule identifier style: bare, tool",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Treat a missing tool as a pipeline failure",
			},

			// Scope.
			&cli.BoolFlag{
				Name:  "changed-only",
				Usage: "Lint only files changed relative to the git base",
			},
			&cli.StringFlag{
				Name:  "event",
				Usage: "Path to a GitHub event payload for base/head resolution",
			},

			// Reports.
			&cli.StringFlag{
				Name:  "sarif",
				Usage: "Write a SARIF 2.1.0 report to the given path",
			},
			&cli.StringFlag{
				Name:  "json",
				Usage: "Write a JSON report to the given path",
			},
			&cli.StringFlag{
				Name:  "html",
				Usage: "Write an HTML report to the given path",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "Append a JSONL run record to the given path",
			},

			// Output format.
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file path (default .casparian.yaml)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := buildOptions(ctx, cmd)
			if err != nil {
				return err
			}

			result, err := casparian.Run(ctx, opts)
			if err != nil {
				return err
			}

			if err := writeReports(cmd, result); err != nil {
				return err
			}

			if err := outputResult(result, cmd.String("format")); err != nil {
				return err
			}

			if !result.Passed {
				return cli.Exit("", result.ExitCode)
			}

			return nil
		},
	}
}

func buildOptions(ctx context.Context, cmd *cli.Command) (casparian.Options, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return casparian.Options{}, err
	}

	opts := casparian.DefaultOptions()
	opts.MinCoverage = cfg.MinCoverage
	opts.Style = cfg.Style()
	opts.Strict = cfg.StrictSubprocessErrors
	opts.TestMode = cfg.TestMode
	opts.SkipTests = cfg.SkipTests

	if len(cfg.Paths) > 0 {
		opts.Paths = cfg.Paths
	}

	// Flags override file and environment.
	gates, err := casparian.ParseGates(cmd.String("gates"))
	if err != nil {
		return casparian.Options{}, err
	}

	opts.Gates = gates

	if cmd.NArg() > 0 {
		opts.Paths = cmd.Args().Slice()
	}

	if minCov := cmd.Int("min-cov"); minCov >= 0 {
		opts.MinCoverage = minCov
	}

	if style := cmd.String("rule-style"); style != "" {
		opts.Style = rules.ParseStyle(style)
	}

	if cmd.Bool("strict") {
		opts.Strict = true
	}

	if cmd.Bool("skip-tests") {
		opts.SkipTests = true
	}

	if cmd.Bool("changed-only") {
		opts.ChangedFiles = git.ChangedPythonFiles(ctx, cmd.String("event"))
	}

	return opts, nil
}

func writeReports(cmd *cli.Command, result *casparian.Result) error {
	if path := cmd.String("sarif"); path != "" {
		if err := report.WriteSARIF(path, version.Name(), result.Findings); err != nil {
			return fmt.Errorf("writing SARIF report: %w", err)
		}
	}

	if path := cmd.String("json"); path != "" {
		if err := report.WriteJSON(path, result.Gates, result.Findings); err != nil {
			return fmt.Errorf("writing JSON report: %w", err)
		}
	}

	if path := cmd.String("html"); path != "" {
		if err := report.WriteHTML(path, result.Gates, result.Findings); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
	}

	if path := cmd.String("log"); path != "" {
		rec := report.NewRecord(result.Gates, result.Findings, result.Coverage)
		if err := report.AppendRecord(path, rec); err != nil {
			return fmt.Errorf("appending run record: %w", err)
		}
	}

	return nil
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	"github.com/lootforge/lootforge/lib/batch"
	"github.com/spf13/pflag"
)

type batchParams struct {
	cli.JSONOutput
	cli.Verbosity
	cli.ConfigOptions
	Workers int    `json:"-" flag:"workers,w" desc:"concurrent decoders (default: batch.workers from config, else one per CPU)"`
	Output  string `json:"-" flag:"output,o" desc:"write every result to this CBOR sequence file (compressed if it ends in .zst or .lz4)"`
}

func batchCommand() *cli.Command {
	var params batchParams

	return &cli.Command{
		Name:    "batch",
		Summary: "Decode a file of serials in parallel",
		Description: `Decode every serial in a file (one per line; blank lines and lines
starting with # are skipped) using a pool of workers, then print a
summary: how many decoded, failed or carried warnings, how many were
duplicates of an earlier serial (same payload fingerprint), and counts
per type character.

With --output the full results, including tokens and per-line errors,
are written as a CBOR sequence that "serial report" can read back.
Use "-" as the file to read stdin. The command exits 1 when any serial
failed to decode.`,
		Usage: "lootforge serial batch <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Decode a list and keep the results",
				Command:     "lootforge serial batch serials.txt -o results.cbor.zst",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("batch", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("batch takes exactly one file argument (use - for stdin)")
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			workers := params.Workers
			if workers == 0 {
				workers = cfg.Batch.Workers
			}

			var input io.Reader = os.Stdin
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				input = file
			}

			results, err := runBatch(ctx, input, workers, logger.With("file", args[0]))
			if err != nil {
				return err
			}
			if params.Output != "" {
				if err := batch.WriteFile(params.Output, results); err != nil {
					return fmt.Errorf("writing results: %w", err)
				}
				logger.Info("wrote results", "path", params.Output, "results", len(results))
			}

			summary := batch.Summarize(results)
			if done, err := params.EmitJSON(summary); done {
				if err != nil {
					return err
				}
			} else if err := writeSummary(os.Stdout, summary); err != nil {
				return err
			}
			if summary.Failed > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// runBatch reads inputs from r and decodes them. Per-line failures are
// logged, not returned.
func runBatch(ctx context.Context, r io.Reader, workers int, logger *slog.Logger) ([]batch.Result, error) {
	inputs, err := batch.ReadInputs(r)
	if err != nil {
		return nil, err
	}
	logger.Debug("decoding serials", "serials", len(inputs), "workers", workers)

	start := time.Now()
	results, err := batch.Decode(ctx, inputs, workers)
	if err != nil {
		return nil, fmt.Errorf("decoding batch: %w", err)
	}
	logger.Debug("decoded serials", "serials", len(results), "elapsed", time.Since(start))

	for _, result := range results {
		if result.Failed() {
			logger.Warn("decode failed", "line", result.Line, "serial", result.Serial, "error", result.Error)
		}
	}
	return results, nil
}

func writeSummary(w io.Writer, summary batch.Summary) error {
	fmt.Fprintf(w, "Total:       %d\n", summary.Total)
	fmt.Fprintf(w, "Decoded:     %d\n", summary.Decoded)
	fmt.Fprintf(w, "Failed:      %d\n", summary.Failed)
	fmt.Fprintf(w, "Warnings:    %d\n", summary.Warnings)
	fmt.Fprintf(w, "Duplicates:  %d\n", summary.Duplicates)
	if len(summary.ByType) == 0 {
		return nil
	}
	fmt.Fprintln(w, "By type:")
	types := slices.SortedFunc(maps.Keys(summary.ByType), func(a, b string) int {
		return cmp.Or(cmp.Compare(summary.ByType[b], summary.ByType[a]), cmp.Compare(a, b))
	})
	for _, typeChar := range types {
		label := typeChar
		if label == "" {
			label = "(none)"
		}
		if _, err := fmt.Fprintf(w, "  %-6s %d\n", label, summary.ByType[typeChar]); err != nil {
			return err
		}
	}
	return nil
}

type reportParams struct {
	cli.JSONOutput
	Failures bool `json:"-" flag:"failures" desc:"list every failed line"`
}

func reportCommand() *cli.Command {
	var params reportParams

	return &cli.Command{
		Name:    "report",
		Summary: "Summarize a results file written by batch",
		Description: `Read a results file written by "serial batch --output" and print its
summary. With --failures, every failed line is listed with its error.
With --json, the summary (or the failed results) is printed as JSON.`,
		Usage: "lootforge serial report <results-file> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("report", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("report takes exactly one results file")
			}
			results, err := batch.ReadFile(args[0])
			if err != nil {
				return err
			}
			return runReport(os.Stdout, results, params)
		},
	}
}

func runReport(w io.Writer, results []batch.Result, params reportParams) error {
	var failures []batch.Result
	if params.Failures {
		for _, result := range results {
			if result.Failed() {
				failures = append(failures, result)
			}
		}
	}

	if params.OutputJSON {
		if params.Failures {
			return cli.WriteJSON(w, normalizeResults(failures))
		}
		return cli.WriteJSON(w, batch.Summarize(results))
	}

	if err := writeSummary(w, batch.Summarize(results)); err != nil {
		return err
	}
	if len(failures) > 0 {
		fmt.Fprintln(w, "Failures:")
	}
	for _, result := range failures {
		if _, err := fmt.Fprintf(w, "  line %d: %s: %s\n", result.Line, result.Serial, result.Error); err != nil {
			return err
		}
	}
	return nil
}

func normalizeResults(results []batch.Result) []batch.Result {
	if results == nil {
		return []batch.Result{}
	}
	return results
}

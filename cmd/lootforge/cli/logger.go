// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command operations.
// When stderr is a terminal, uses slog.TextHandler for human-readable output.
// When stderr is piped or redirected (CI, scripts, tests), uses
// slog.JSONHandler for machine-parseable output.
//
// [Command.Execute] scopes the logger with the command path; commands
// add their own context via With():
//
//	logger = logger.With("file", path)
func NewCommandLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

const verboseFlag = "verbose"

// Verbosity is an embeddable struct that adds a --verbose flag to a
// command's parameter struct. [Command.Execute] reads the flag and
// passes a debug-level logger to Run when it is set.
type Verbosity struct {
	Verbose bool `json:"-" flag:"verbose,v" desc:"log debug detail to stderr"`
}

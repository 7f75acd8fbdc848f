// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the lootforge binary.
//
// A [Command] tree is built by the commands package and run with
// [Command.Execute], which routes arguments to subcommands, parses
// flags with pflag, prints help, and hands Run a [log/slog] logger
// scoped to the command path.
//
// Flags live on parameter structs tagged flag/desc/default and bound
// with [FlagsFromParams]. Shared option structs are embedded:
// [JSONOutput] for --json, [Verbosity] for --verbose, [ConfigOptions]
// for --config, [PartsOptions] for the parts database and
// [PlayerOptions] for the save key.
//
// Unknown subcommands and flags get a "did you mean" suggestion when a
// known name is within a small edit distance.
package cli

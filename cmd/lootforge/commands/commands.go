// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete lootforge command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	partscmd "github.com/lootforge/lootforge/cmd/lootforge/parts"
	savecmd "github.com/lootforge/lootforge/cmd/lootforge/save"
	serialcmd "github.com/lootforge/lootforge/cmd/lootforge/serial"
	"github.com/lootforge/lootforge/lib/version"
	"github.com/spf13/pflag"
)

// Root builds and returns the complete lootforge command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "lootforge",
		Description: `lootforge: item serial and save file toolkit.

Decode and encode item serial strings, decrypt and edit character and
profile saves, and browse the parts database that names part tokens.`,
		Subcommands: []*cli.Command{
			serialcmd.Command(),
			savecmd.Command(),
			partscmd.Command(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Decode a serial",
				Command:     "lootforge serial decode '@Ugr$ZCm/&tH!t{KgK/Shxu>k'",
			},
			{
				Description: "List the items in a save",
				Command:     "lootforge save items 1.sav --player-id 76561198012345678",
			},
			{
				Description: "Search the parts database",
				Command:     "lootforge parts search legendary --parts parts.json",
			},
		},
	}
}

func versionCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
	}

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			if done, err := params.EmitJSON(version.Current()); done {
				return err
			}
			fmt.Printf("lootforge %s\n", version.Full())
			return nil
		},
	}
}

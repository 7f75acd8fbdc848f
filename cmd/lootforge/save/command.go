// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"fmt"
	"io"
	"os"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
)

// saveOptions are the flags shared by every save command.
type saveOptions struct {
	cli.Verbosity
	cli.ConfigOptions
	cli.PlayerOptions
}

// Command returns the "save" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "save",
		Summary: "Decrypt, inspect and edit save files",
		Description: `Work with encrypted save files.

A save is AES-256-ECB encrypted with a key derived from the numeric
player (account) id, and the plaintext is a PKCS7-padded zlib stream
holding a YAML document. Every command needs the player id, from
--player-id or player_id in the config file. A wrong id almost always
shows up as a padding or decompression error.`,
		Subcommands: []*cli.Command{
			decryptCommand(),
			encryptCommand(),
			itemsCommand(),
			infoCommand(),
			setCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Decrypt a save to YAML",
				Command:     "lootforge save decrypt 1.sav -o 1.yaml --player-id 76561198012345678",
			},
			{
				Description: "List the items in a save with part names",
				Command:     "lootforge save items 1.sav --parts parts.json --category 3",
			},
			{
				Description: "Set cash and eridium in place (keeps 1.sav.bak)",
				Command:     "lootforge save set 1.sav state.currencies.cash=999999 state.currencies.eridium=5000",
			},
		},
	}
}

// writeOutput writes data to path, or to stdout when path is empty or
// "-".
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

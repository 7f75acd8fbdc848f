// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"fmt"
	"slices"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	"github.com/lootforge/lootforge/lib/config"
)

// formatDiag prints CBOR in diagnostic notation. It is accepted by
// --format but not by the config file.
const formatDiag = "diag"

// Command returns the "serial" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "serial",
		Summary: "Decode and encode item serials",
		Description: `Decode item serial strings into their token streams and encode token
streams back into serials.

A serial looks like @Ugr$ZCm/&tH!t{KgK/Shxu>k. Decoding shows the flat
token sequence: numbers (VarInt and VarBit), part references {index},
{index:value} or {index:[values]}, strings, and the separators | and ,
that group them. With a parts database and --category, part indices are
replaced by part names.`,
		Subcommands: []*cli.Command{
			decodeCommand(),
			encodeCommand(),
			batchCommand(),
			reportCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Decode a serial",
				Command:     "lootforge serial decode '@Ugr$ZCm/&tH!t{KgK/Shxu>k'",
			},
			{
				Description: "Decode with part names from a database",
				Command:     "lootforge serial decode --parts parts.json --category 3 '@Ugr$ZCm/&tH!t{KgK/Shxu>k'",
			},
			{
				Description: "Re-encode an edited token document",
				Command:     "lootforge serial decode --json '@Ugr$ZCm/&tH!t{KgK/Shxu>k' | lootforge serial encode",
			},
			{
				Description: "Decode a list of serials in parallel",
				Command:     "lootforge serial batch serials.txt --output results.cbor.zst",
			},
		},
	}
}

// resolveFormat picks the output format: --json wins, then --format,
// then the config file.
func resolveFormat(jsonFlag bool, formatFlag string, cfg *config.Config) (string, error) {
	if jsonFlag {
		return config.FormatJSON, nil
	}
	format := formatFlag
	if format == "" {
		format = cfg.Output.Format
	}
	formats := []string{config.FormatText, config.FormatJSON, config.FormatCBOR, formatDiag}
	if !slices.Contains(formats, format) {
		return "", fmt.Errorf("unknown format %q (want one of %v)", format, formats)
	}
	return format, nil
}

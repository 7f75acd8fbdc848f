// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	"github.com/lootforge/lootforge/lib/envelope"
	"github.com/lootforge/lootforge/lib/savedoc"
	"github.com/spf13/pflag"
)

type decryptParams struct {
	saveOptions
	Output string `json:"-" flag:"output,o" desc:"write the YAML here instead of stdout"`
}

func decryptCommand() *cli.Command {
	var params decryptParams

	return &cli.Command{
		Name:    "decrypt",
		Summary: "Decrypt a save file to YAML",
		Usage:   "lootforge save decrypt <file.sav> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decrypt", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("decrypt takes exactly one save file")
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			sealer, err := params.Envelope(cfg)
			if err != nil {
				return err
			}
			body, err := sealer.ReadFile(args[0])
			if err != nil {
				return cli.WrongKeyHint(err)
			}
			logger.Debug("decrypted save", "file", args[0], "bytes", len(body))
			return writeOutput(params.Output, body, os.Stdout)
		},
	}
}

type encryptParams struct {
	saveOptions
	Output string `json:"-" flag:"output,o" desc:"save file to write (required)"`
	Force  bool   `json:"-" flag:"force" desc:"skip checking that the input parses as a save document"`
}

func encryptCommand() *cli.Command {
	var params encryptParams

	return &cli.Command{
		Name:    "encrypt",
		Summary: "Encrypt a YAML document to a save file",
		Description: `Compress and encrypt a YAML save document with the key for the player
id. The input is parsed first so a broken edit does not produce a save
the game rejects; --force skips that check.`,
		Usage: "lootforge save encrypt <file.yaml> -o <file.sav> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encrypt", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("encrypt takes exactly one YAML file")
			}
			if params.Output == "" {
				return errors.New("--output is required")
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			sealer, err := params.Envelope(cfg)
			if err != nil {
				return err
			}
			body, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := encryptFile(sealer, body, params.Output, params.Force); err != nil {
				return err
			}
			logger.Info("wrote save", "file", params.Output, "bytes", len(body))
			return nil
		},
	}
}

// encryptFile seals body into path, checking first that it parses
// unless force is set.
func encryptFile(sealer *envelope.Envelope, body []byte, path string, force bool) error {
	if !force {
		if _, err := savedoc.Parse(body); err != nil {
			return fmt.Errorf("%w (use --force to encrypt anyway)", err)
		}
	}
	return sealer.WriteFile(path, body)
}

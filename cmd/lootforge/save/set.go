// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package save

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	"github.com/lootforge/lootforge/lib/envelope"
	"github.com/lootforge/lootforge/lib/fingerprint"
	"github.com/lootforge/lootforge/lib/savedoc"
	libserial "github.com/lootforge/lootforge/lib/serial"
	"github.com/spf13/pflag"
)

type setParams struct {
	saveOptions
	Output   string   `json:"-" flag:"output,o" desc:"write the edited save here instead of in place"`
	Raw      bool     `json:"-" flag:"raw" desc:"parse each value as a YAML fragment instead of a scalar"`
	Name     string   `json:"-" flag:"name" desc:"set the character name"`
	Cash     int64    `json:"-" flag:"cash" desc:"set cash (-1 leaves it unchanged)" default:"-1"`
	Eridium  int64    `json:"-" flag:"eridium" desc:"set eridium (-1 leaves it unchanged)" default:"-1"`
	AddItems []string `json:"-" flag:"add-item" desc:"add a serial to the next free backpack slot (repeatable)"`
	Labels   []string `json:"-" flag:"label" desc:"label a backpack slot, as slot=label with label one of favorite, junk, label1-label4, none (repeatable)"`
	DryRun   bool     `json:"-" flag:"dry-run,n" desc:"print the edited YAML instead of writing the save"`
	NoBackup bool     `json:"-" flag:"no-backup" desc:"do not keep <file>.bak when editing in place"`
}

func setCommand() *cli.Command {
	var params setParams

	return &cli.Command{
		Name:    "set",
		Summary: "Edit values in a save file",
		Description: `Decrypt a save, apply edits, and encrypt it again.

Each argument is path=value. Paths are dotted keys with [n] for
sequence elements, such as state.experience[0].points. Values that look
like integers, floats or true/false are stored as such; everything else
is stored as a string. With --raw each value is parsed as YAML, for
setting lists and mappings.

Missing keys are created. Edits are applied in sorted path order, and
the first one that fails aborts the command before anything is written.

When editing in place the previous file is kept as <file>.bak unless
save.backup is false in the config or --no-backup is given.`,
		Usage: "lootforge save set <file.sav> [path=value]... [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("set", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return errors.New("set needs a save file")
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			sealer, err := params.Envelope(cfg)
			if err != nil {
				return err
			}
			return editSave(sealer, args[0], func(document *savedoc.Document) (*savedoc.ChangeSet, error) {
				return buildChanges(document, args[1:], &params)
			}, editOptions{
				output: params.Output,
				backup: cfg.Save.Backup && !params.NoBackup,
				dryRun: params.DryRun,
			}, os.Stdout, logger)
		},
	}
}

// buildChanges turns path=value arguments and the convenience flags
// into a change set against document.
func buildChanges(document *savedoc.Document, assignments []string, params *setParams) (*savedoc.ChangeSet, error) {
	changes := savedoc.NewChangeSet()
	for _, assignment := range assignments {
		path, value, ok := strings.Cut(assignment, "=")
		if !ok || path == "" {
			return nil, fmt.Errorf("invalid assignment %q: want path=value", assignment)
		}
		if params.Raw {
			if err := changes.AddRaw(path, value); err != nil {
				return nil, err
			}
		} else {
			changes.AddParsed(path, value)
		}
	}

	if params.Name != "" {
		changes.SetCharacterName(params.Name)
	}
	if params.Cash >= 0 {
		changes.SetCash(uint64(params.Cash))
	}
	if params.Eridium >= 0 {
		changes.SetEridium(uint64(params.Eridium))
	}

	slot := document.NextBackpackSlot()
	for _, text := range params.AddItems {
		if _, err := libserial.Decode(text); err != nil {
			return nil, fmt.Errorf("--add-item: %w", err)
		}
		changes.AddBackpackItem(slot, text, savedoc.BackpackFlags())
		slot++
	}

	for _, spec := range params.Labels {
		slotText, labelText, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --label %q: want slot=label", spec)
		}
		labelSlot, err := strconv.Atoi(slotText)
		if err != nil || labelSlot < 0 {
			return nil, fmt.Errorf("invalid --label %q: slot must be a non-negative integer", spec)
		}
		label, err := savedoc.ParseLabel(labelText)
		if err != nil {
			return nil, fmt.Errorf("invalid --label %q: %w", spec, err)
		}
		if _, err := document.Text(savedoc.BackpackSlot(labelSlot) + ".serial"); err != nil {
			return nil, fmt.Errorf("invalid --label %q: no item in backpack slot %d", spec, labelSlot)
		}
		changes.SetBackpackLabel(labelSlot, label)
	}
	return changes, nil
}

type editOptions struct {
	output string
	backup bool
	dryRun bool
}

// editSave decrypts the save at path, applies the changes build
// returns, and writes the result to options.output (or back to path).
// Nothing is written if any change fails.
func editSave(sealer *envelope.Envelope, path string, build func(*savedoc.Document) (*savedoc.ChangeSet, error), options editOptions, stdout io.Writer, logger *slog.Logger) error {
	ciphertext, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	body, err := sealer.Open(ciphertext)
	if err != nil {
		return cli.WrongKeyHint(fmt.Errorf("opening %s: %w", path, err))
	}
	document, err := savedoc.Parse(body)
	if err != nil {
		return err
	}

	changes, err := build(document)
	if err != nil {
		return err
	}
	if changes.Len() == 0 {
		return errors.New("nothing to change: give path=value arguments or an edit flag")
	}
	if err := changes.Apply(document); err != nil {
		return err
	}
	for _, changed := range changes.Paths() {
		logger.Debug("set value", "path", changed)
	}
	edited, err := document.Marshal()
	if err != nil {
		return err
	}

	if options.dryRun {
		_, err := stdout.Write(edited)
		return err
	}

	target := options.output
	if target == "" {
		target = path
	}
	if target == path && options.backup {
		backupPath := path + ".bak"
		if err := os.WriteFile(backupPath, ciphertext, 0o644); err != nil {
			return fmt.Errorf("writing backup: %w", err)
		}
		logger.Debug("kept backup", "file", backupPath)
	}
	if err := sealer.WriteFile(target, edited); err != nil {
		return err
	}
	logger.Info("saved",
		"file", target,
		"changes", changes.Len(),
		"body_fingerprint", fingerprint.Body(edited).Short(),
	)
	return nil
}

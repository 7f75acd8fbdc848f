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
	"strings"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	"github.com/lootforge/lootforge/lib/fingerprint"
	"github.com/lootforge/lootforge/lib/savedoc"
	libserial "github.com/lootforge/lootforge/lib/serial"
	"github.com/spf13/pflag"
)

// item is one serial found in a save.
type item struct {
	Path        string              `json:"path"`
	Serial      string              `json:"serial"`
	TypeChar    string              `json:"type,omitempty"`
	Fingerprint *fingerprint.Digest `json:"fingerprint,omitempty"`
	Tokens      string              `json:"tokens,omitempty"`
	StateFlags  *savedoc.StateFlags `json:"state_flags,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// inventory is every serial in a save plus the order-independent
// digest of the ones that decoded.
type inventory struct {
	Items       []item             `json:"items"`
	Fingerprint fingerprint.Digest `json:"fingerprint"`
	Undecodable int                `json:"undecodable"`
}

// readInventory decodes every serial in document. Serials that fail
// to decode are kept with their error and left out of the digest.
func readInventory(document *savedoc.Document, namer libserial.PartNamer) inventory {
	refs := document.Serials()
	result := inventory{Items: make([]item, 0, len(refs))}
	var digests []fingerprint.Digest
	for _, ref := range refs {
		entry := item{Path: ref.Path, Serial: ref.Serial}
		if flagsPath, ok := strings.CutSuffix(ref.Path, ".serial"); ok {
			if value, err := document.Uint(flagsPath + ".state_flags"); err == nil {
				flags := savedoc.StateFlags(value)
				entry.StateFlags = &flags
			}
		}

		decoded, err := libserial.Decode(ref.Serial)
		if err != nil {
			entry.Error = err.Error()
			result.Undecodable++
			result.Items = append(result.Items, entry)
			continue
		}
		digest := fingerprint.Payload(decoded.Payload)
		digests = append(digests, digest)
		entry.Fingerprint = &digest
		entry.Tokens = libserial.Format(decoded.Tokens, namer)
		if decoded.TypeChar != 0 {
			entry.TypeChar = string(decoded.TypeChar)
		}
		result.Items = append(result.Items, entry)
	}
	result.Fingerprint = fingerprint.Inventory(digests)
	return result
}

type itemsParams struct {
	saveOptions
	cli.JSONOutput
	cli.PartsOptions
}

func itemsCommand() *cli.Command {
	var params itemsParams

	return &cli.Command{
		Name:    "items",
		Summary: "List the item serials in a save",
		Description: `Decrypt a save and decode every item serial in it: backpack, equipped
slots, bank, and anything else stored under a "serial" key.

Each item shows its document path, type character, payload fingerprint,
state flags and tokens. The inventory fingerprint at the end does not
depend on slot order, so it stays the same when items only move.`,
		Usage: "lootforge save items <file.sav> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("items", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("items takes exactly one save file")
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			sealer, err := params.Envelope(cfg)
			if err != nil {
				return err
			}
			database, err := params.Database(cfg, logger)
			if err != nil {
				return err
			}
			document, err := openDocument(sealer.ReadFile, args[0])
			if err != nil {
				return err
			}

			result := readInventory(document, params.Namer(database))
			if result.Undecodable > 0 {
				logger.Warn("some serials did not decode", "undecodable", result.Undecodable, "total", len(result.Items))
			}
			if done, err := params.EmitJSON(result); done {
				return err
			}
			return writeInventory(os.Stdout, result)
		},
	}
}

// openDocument reads a save with read and parses the plaintext.
func openDocument(read func(string) ([]byte, error), path string) (*savedoc.Document, error) {
	body, err := read(path)
	if err != nil {
		return nil, cli.WrongKeyHint(err)
	}
	return savedoc.Parse(body)
}

func writeInventory(w io.Writer, result inventory) error {
	var builder strings.Builder
	for _, entry := range result.Items {
		fmt.Fprintf(&builder, "%s\n", entry.Path)
		fmt.Fprintf(&builder, "  Serial:      %s\n", entry.Serial)
		if entry.Error != "" {
			fmt.Fprintf(&builder, "  Error:       %s\n", entry.Error)
			continue
		}
		if entry.TypeChar != "" {
			fmt.Fprintf(&builder, "  Type:        %s\n", entry.TypeChar)
		}
		fmt.Fprintf(&builder, "  Fingerprint: %s\n", entry.Fingerprint.Short())
		if entry.StateFlags != nil {
			fmt.Fprintf(&builder, "  Flags:       %s\n", entry.StateFlags)
		}
		fmt.Fprintf(&builder, "  Tokens:      %s\n", entry.Tokens)
	}
	fmt.Fprintf(&builder, "\nItems:       %d", len(result.Items))
	if result.Undecodable > 0 {
		fmt.Fprintf(&builder, " (%d undecodable)", result.Undecodable)
	}
	fmt.Fprintf(&builder, "\nInventory:   %s\n", result.Fingerprint.Short())
	_, err := io.WriteString(w, builder.String())
	return err
}

// saveInfo is the output of "save info".
type saveInfo struct {
	File      string             `json:"file"`
	FileBytes int64              `json:"file_bytes"`
	BodyBytes int                `json:"body_bytes"`
	Body      fingerprint.Digest `json:"body_fingerprint"`
	Inventory fingerprint.Digest `json:"inventory_fingerprint"`
	Serials   int                `json:"serials"`
	Summary   savedoc.Summary    `json:"summary"`
}

type infoParams struct {
	saveOptions
	cli.JSONOutput
}

func infoCommand() *cli.Command {
	var params infoParams

	return &cli.Command{
		Name:    "info",
		Summary: "Summarize a save file",
		Description: `Decrypt a save and print its sizes, fingerprints and headline state:
character name, class, difficulty, currencies, experience and the
number of item serials.

The body fingerprint changes with any edit; the inventory fingerprint
changes only when the set of items does.`,
		Usage: "lootforge save info <file.sav> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("info", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) != 1 {
				return errors.New("info takes exactly one save file")
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			sealer, err := params.Envelope(cfg)
			if err != nil {
				return err
			}
			stat, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			body, err := sealer.ReadFile(args[0])
			if err != nil {
				return cli.WrongKeyHint(err)
			}
			info, err := describeSave(args[0], stat.Size(), body)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(info); done {
				return err
			}
			return writeInfo(os.Stdout, info)
		},
	}
}

func describeSave(path string, fileBytes int64, body []byte) (saveInfo, error) {
	document, err := savedoc.Parse(body)
	if err != nil {
		return saveInfo{}, err
	}
	items := readInventory(document, nil)
	return saveInfo{
		File:      path,
		FileBytes: fileBytes,
		BodyBytes: len(body),
		Body:      fingerprint.Body(body),
		Inventory: items.Fingerprint,
		Serials:   len(items.Items),
		Summary:   document.Summarize(),
	}, nil
}

func writeInfo(w io.Writer, info saveInfo) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, "File:        %s (%d bytes)\n", info.File, info.FileBytes)
	fmt.Fprintf(&builder, "Body:        %d bytes, %s\n", info.BodyBytes, info.Body.Short())
	fmt.Fprintf(&builder, "Inventory:   %d serials, %s\n", info.Serials, info.Inventory.Short())
	summary := info.Summary
	if summary.CharacterName != "" {
		fmt.Fprintf(&builder, "Character:   %s\n", summary.CharacterName)
	}
	if summary.Class != "" {
		fmt.Fprintf(&builder, "Class:       %s\n", summary.Class)
	}
	if summary.Difficulty != "" {
		fmt.Fprintf(&builder, "Difficulty:  %s\n", summary.Difficulty)
	}
	if summary.CharacterLevel != 0 {
		fmt.Fprintf(&builder, "Level:       %d\n", summary.CharacterLevel)
	}
	fmt.Fprintf(&builder, "Cash:        %d\n", summary.Cash)
	fmt.Fprintf(&builder, "Eridium:     %d\n", summary.Eridium)
	fmt.Fprintf(&builder, "XP:          %d (specialization %d)\n", summary.CharacterXP, summary.SpecializationXP)
	_, err := io.WriteString(w, builder.String())
	return err
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	libserial "github.com/lootforge/lootforge/lib/serial"
	"github.com/spf13/pflag"
)

type encodeParams struct {
	cli.Verbosity
	Verify bool `json:"-" flag:"verify" desc:"decode each result and fail unless the tokens match" default:"true"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Encode token documents to serial strings",
		Description: `Read JSON token documents and print one serial string per document.

A document is either the object printed by "serial decode --json" (only
its "tokens" field is used) or a bare array of tokens. Several documents
may follow each other in the input. Input comes from the file argument,
or stdin when there is none.

A terminating separator is added when the token list does not end with
one. When the input document carries the serial it was decoded from and
the result differs, a warning is logged: the original had padding or
non-canonical numbers that re-encoding normalizes.`,
		Usage: "lootforge serial encode [file] [flags]",
		Examples: []cli.Example{
			{
				Description: "Encode a single part list",
				Command:     `echo '[{"kind":"varbit","value":5,"bits":4},{"kind":"separator"}]' | lootforge serial encode`,
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			var input io.Reader = os.Stdin
			switch len(args) {
			case 0:
			case 1:
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				input = file
			default:
				return fmt.Errorf("encode takes at most one file argument, got %d", len(args))
			}
			return runEncode(input, os.Stdout, params.Verify, logger)
		},
	}
}

// runEncode reads token documents from r and writes one serial per
// line to w.
func runEncode(r io.Reader, w io.Writer, verify bool, logger *slog.Logger) error {
	decoder := json.NewDecoder(r)
	for index := 0; ; index++ {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				if index == 0 {
					return errors.New("no token documents in input")
				}
				return nil
			}
			return fmt.Errorf("reading document %d: %w", index, err)
		}

		record, err := parseDocument(raw)
		if err != nil {
			return fmt.Errorf("document %d: %w", index, err)
		}
		text, err := libserial.Encode(record.Tokens)
		if err != nil {
			return fmt.Errorf("document %d: %w", index, err)
		}
		if verify {
			if err := verifyEncoding(text, record.Tokens); err != nil {
				return fmt.Errorf("document %d: %w", index, err)
			}
		}
		if record.Serial != "" && record.Serial != text {
			logger.Warn("re-encoded serial differs from the input serial",
				"document", index,
				"input", record.Serial,
				"encoded", text,
			)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
}

// parseDocument accepts a [libserial.Record] object or a bare token
// array.
func parseDocument(raw json.RawMessage) (libserial.Record, error) {
	var record libserial.Record
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &record.Tokens); err != nil {
			return record, fmt.Errorf("parsing token array: %w", err)
		}
		return record, nil
	}
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return record, fmt.Errorf("parsing token document: %w", err)
	}
	if record.Tokens == nil {
		return record, errors.New(`token document has no "tokens" field`)
	}
	return record, nil
}

// verifyEncoding decodes text and compares it with tokens, ignoring
// the terminating separator that encoding may add.
func verifyEncoding(text string, tokens []libserial.Token) error {
	decoded, err := libserial.Decode(text)
	if err != nil {
		return fmt.Errorf("encoded serial does not decode: %w", err)
	}
	want := trimTerminators(tokens)
	got := trimTerminators(decoded.Tokens)
	if !libserial.EqualTokens(got, want) {
		return fmt.Errorf("encoded serial decodes to different tokens: %s", libserial.Format(decoded.Tokens, nil))
	}
	return nil
}

func trimTerminators(tokens []libserial.Token) []libserial.Token {
	end := len(tokens)
	for end > 0 && tokens[end-1].IsSeparator() {
		end--
	}
	return tokens[:end]
}

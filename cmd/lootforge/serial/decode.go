// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	"github.com/lootforge/lootforge/lib/codec"
	"github.com/lootforge/lootforge/lib/config"
	"github.com/lootforge/lootforge/lib/fingerprint"
	"github.com/lootforge/lootforge/lib/reference"
	libserial "github.com/lootforge/lootforge/lib/serial"
	"github.com/spf13/pflag"
)

type decodeParams struct {
	cli.JSONOutput
	cli.Verbosity
	cli.ConfigOptions
	cli.PartsOptions
	Format string `json:"-" flag:"format,f" desc:"output format: text, json, cbor or diag (default: output.format from config)"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode serial strings to tokens",
		Description: `Decode one or more serial strings and print their tokens.

With "-" as the only argument, serials are read from stdin, one per
line. Each serial is decoded independently: a failure is reported and
the remaining serials are still decoded, and the command exits 1 if any
failed.

Text output shows the type character, payload size, payload fingerprint
and the token stream. JSON and CBOR output emit one document per serial
with the same fields; the JSON form is what "serial encode" reads.`,
		Usage: "lootforge serial decode <serial>... [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			format, err := resolveFormat(params.OutputJSON, params.Format, cfg)
			if err != nil {
				return err
			}
			database, err := params.Database(cfg, logger)
			if err != nil {
				return err
			}
			serials, err := serialArgs(args, os.Stdin)
			if err != nil {
				return err
			}
			if len(serials) == 0 {
				return errors.New("no serials given")
			}
			return runDecode(os.Stdout, serials, decodeOptions{
				format: format,
				namer:  params.Namer(database),
			}, logger)
		},
	}
}

type decodeOptions struct {
	format string
	namer  libserial.PartNamer
}

// decoded is the document emitted for one serial in JSON and CBOR
// output.
type decoded struct {
	libserial.Record
	Fingerprint fingerprint.Digest `json:"fingerprint"`
	Parts       []namedPart        `json:"parts,omitempty"`
}

// namedPart is a part token resolved through the parts database.
type namedPart struct {
	Index       uint16                `json:"index"`
	Name        string                `json:"name"`
	Description reference.Description `json:"description"`
}

// runDecode decodes every serial and writes the result in format to
// w. Failures are logged and reflected in the returned error.
func runDecode(w io.Writer, serials []string, options decodeOptions, logger *slog.Logger) error {
	var cborEncoder *codec.Encoder
	if options.format == config.FormatCBOR {
		cborEncoder = codec.NewEncoder(w)
	}

	failed := 0
	for _, text := range serials {
		result, err := libserial.Decode(text)
		if err != nil {
			failed++
			logDecodeError(logger, text, err)
			continue
		}
		for _, warning := range result.Warnings {
			logger.Warn("serial decoded with warning",
				"serial", text,
				"warning", warning.Kind.String(),
				"bit_offset", warning.BitOffset,
				"detail", warning.Detail,
			)
		}

		document := decoded{
			Record:      result.Record(text),
			Fingerprint: fingerprint.Payload(result.Payload),
			Parts:       nameParts(result.Tokens, options.namer),
		}
		switch options.format {
		case config.FormatJSON:
			err = cli.WriteJSON(w, document)
		case config.FormatCBOR:
			err = cborEncoder.Encode(document)
		case formatDiag:
			err = writeDiagnostic(w, document)
		default:
			err = writeText(w, document, result, options.namer)
		}
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if failed > 0 {
		logger.Error("some serials failed to decode", "failed", failed, "total", len(serials))
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func logDecodeError(logger *slog.Logger, text string, err error) {
	attributes := []any{"serial", text, "error", err}
	var decodeErr *libserial.DecodeError
	if errors.As(err, &decodeErr) {
		attributes = append(attributes,
			"bit_offset", decodeErr.BitOffset,
			"partial_tokens", libserial.Format(decodeErr.Tokens, nil),
		)
	}
	logger.Error("decode failed", attributes...)
}

func nameParts(tokens []libserial.Token, namer libserial.PartNamer) []namedPart {
	if namer == nil {
		return nil
	}
	var parts []namedPart
	for _, token := range tokens {
		if token.Kind != libserial.KindPart {
			continue
		}
		name, ok := namer(token.Index)
		if !ok {
			continue
		}
		parts = append(parts, namedPart{
			Index:       token.Index,
			Name:        name,
			Description: reference.Describe(name),
		})
	}
	return parts
}

func writeText(w io.Writer, document decoded, result *libserial.Serial, namer libserial.PartNamer) error {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Serial:      %s\n", document.Serial)
	if document.TypeChar != "" {
		fmt.Fprintf(&builder, "Type:        %s\n", document.TypeChar)
	}
	fmt.Fprintf(&builder, "Payload:     %d bytes\n", len(result.Payload))
	fmt.Fprintf(&builder, "Fingerprint: %s\n", document.Fingerprint.Short())
	fmt.Fprintf(&builder, "Tokens:      %s\n", libserial.Format(result.Tokens, namer))
	for _, part := range document.Parts {
		description := part.Description.String()
		if description == "" {
			fmt.Fprintf(&builder, "  {%d} %s\n", part.Index, part.Name)
		} else {
			fmt.Fprintf(&builder, "  {%d} %s  [%s]\n", part.Index, part.Name, description)
		}
	}
	for _, warning := range document.Warnings {
		fmt.Fprintf(&builder, "Warning:     %s\n", warning)
	}
	builder.WriteByte('\n')
	_, err := io.WriteString(w, builder.String())
	return err
}

func writeDiagnostic(w io.Writer, document decoded) error {
	data, err := codec.Marshal(document)
	if err != nil {
		return err
	}
	notation, err := codec.Diagnose(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, notation)
	return err
}

// serialArgs returns args, or the non-blank lines of stdin when args
// is exactly "-".
func serialArgs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) != 1 || args[0] != "-" {
		return args, nil
	}
	var serials []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			serials = append(serials, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return serials, nil
}

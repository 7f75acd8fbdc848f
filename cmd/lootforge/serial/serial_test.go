// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lootforge/lootforge/cmd/lootforge/cli"
	"github.com/lootforge/lootforge/lib/batch"
	"github.com/lootforge/lootforge/lib/codec"
	"github.com/lootforge/lootforge/lib/config"
	"github.com/lootforge/lootforge/lib/fingerprint"
	libserial "github.com/lootforge/lootforge/lib/serial"
)

const goldenSerial = "@Ugr$ZCm/&tH!t{KgK/Shxu>k"

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testNamer(index uint16) (string, bool) {
	switch index {
	case 8:
		return "JAK_PS.part_barrel_01", true
	case 252:
		return "JAK_PS.comp_05_legendary_SeventhSense", true
	}
	return "", false
}

func TestResolveFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Format = config.FormatCBOR

	tests := []struct {
		json   bool
		flag   string
		want   string
		hasErr bool
	}{
		{json: true, flag: "text", want: config.FormatJSON},
		{flag: "diag", want: formatDiag},
		{flag: "", want: config.FormatCBOR},
		{flag: "xml", hasErr: true},
	}
	for _, test := range tests {
		got, err := resolveFormat(test.json, test.flag, cfg)
		if (err != nil) != test.hasErr || got != test.want {
			t.Errorf("resolveFormat(%v, %q) = %q, %v", test.json, test.flag, got, err)
		}
	}
}

func TestDecodeText(t *testing.T) {
	var output bytes.Buffer
	err := runDecode(&output, []string{goldenSerial}, decodeOptions{format: config.FormatText}, discardLogger())
	if err != nil {
		t.Fatalf("runDecode: %v", err)
	}
	text := output.String()
	for _, want := range []string{
		"Serial:      " + goldenSerial,
		"Type:        r",
		"Payload:     18 bytes",
		"Fingerprint: fp-",
		"Tokens:      180928| 50| {0:1} 1660| | {8} {14} {252:97}|",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestDecodeTextWithNames(t *testing.T) {
	var output bytes.Buffer
	err := runDecode(&output, []string{goldenSerial}, decodeOptions{format: config.FormatText, namer: testNamer}, discardLogger())
	if err != nil {
		t.Fatalf("runDecode: %v", err)
	}
	text := output.String()
	for _, want := range []string{
		"{JAK_PS.part_barrel_01} {14} {JAK_PS.comp_05_legendary_SeventhSense:97}|",
		"{8} JAK_PS.part_barrel_01  [Jakobs Pistol]",
		"{252} JAK_PS.comp_05_legendary_SeventhSense  [Legendary Jakobs Pistol",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	var output bytes.Buffer
	err := runDecode(&output, []string{goldenSerial}, decodeOptions{format: config.FormatJSON}, discardLogger())
	if err != nil {
		t.Fatalf("runDecode: %v", err)
	}

	var document struct {
		Serial      string            `json:"serial"`
		Type        string            `json:"type"`
		Tokens      []libserial.Token `json:"tokens"`
		Fingerprint string            `json:"fingerprint"`
	}
	if err := json.Unmarshal(output.Bytes(), &document); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output.String())
	}
	if document.Serial != goldenSerial || document.Type != "r" {
		t.Errorf("document = %+v", document)
	}
	if len(document.Tokens) != 12 {
		t.Errorf("document has %d tokens, want 12", len(document.Tokens))
	}
	decoded, err := libserial.Decode(goldenSerial)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := fingerprint.Payload(decoded.Payload).String(); document.Fingerprint != want {
		t.Errorf("fingerprint = %q, want %q", document.Fingerprint, want)
	}
}

func TestDecodeCBOR(t *testing.T) {
	var output bytes.Buffer
	err := runDecode(&output, []string{goldenSerial, goldenSerial}, decodeOptions{format: config.FormatCBOR}, discardLogger())
	if err != nil {
		t.Fatalf("runDecode: %v", err)
	}
	documents, err := codec.ReadSequence[map[string]any](&output)
	if err != nil {
		t.Fatalf("ReadSequence: %v", err)
	}
	if len(documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(documents))
	}
	if documents[0]["serial"] != goldenSerial {
		t.Errorf("serial = %v", documents[0]["serial"])
	}
}

func TestDecodeDiagnostic(t *testing.T) {
	var output bytes.Buffer
	err := runDecode(&output, []string{goldenSerial}, decodeOptions{format: formatDiag}, discardLogger())
	if err != nil {
		t.Fatalf("runDecode: %v", err)
	}
	if !strings.Contains(output.String(), `"serial"`) || !strings.Contains(output.String(), `"varbit"`) {
		t.Errorf("diagnostic output = %s", output.String())
	}
}

func TestDecodeFailureExitCode(t *testing.T) {
	var output bytes.Buffer
	err := runDecode(&output, []string{"@Ug!!", goldenSerial, "nope"}, decodeOptions{format: config.FormatText}, discardLogger())
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("runDecode error = %v, want exit code 1", err)
	}
	if !strings.Contains(output.String(), goldenSerial) {
		t.Error("valid serial was not decoded after a failure")
	}
}

func TestSerialArgs(t *testing.T) {
	args, err := serialArgs([]string{"a", "b"}, strings.NewReader("ignored"))
	if err != nil || len(args) != 2 {
		t.Errorf("serialArgs(a b) = %v, %v", args, err)
	}
	args, err = serialArgs([]string{"-"}, strings.NewReader("one\n\n  two  \n"))
	if err != nil || len(args) != 2 || args[1] != "two" {
		t.Errorf("serialArgs(-) = %q, %v", args, err)
	}
}

func TestEncodeFromDecodeOutput(t *testing.T) {
	var decoded bytes.Buffer
	if err := runDecode(&decoded, []string{goldenSerial, goldenSerial}, decodeOptions{format: config.FormatJSON}, discardLogger()); err != nil {
		t.Fatalf("runDecode: %v", err)
	}

	var encoded bytes.Buffer
	if err := runEncode(&decoded, &encoded, true, discardLogger()); err != nil {
		t.Fatalf("runEncode: %v", err)
	}
	lines := strings.Fields(encoded.String())
	if len(lines) != 2 || lines[0] != goldenSerial || lines[1] != goldenSerial {
		t.Errorf("encoded = %q, want the golden serial twice", lines)
	}
}

func TestEncodeTokenArray(t *testing.T) {
	input := `[{"kind":"varbit","value":180928,"bits":18},{"kind":"separator"},
{"kind":"varbit","value":50,"bits":8},{"kind":"separator"},
{"kind":"part","index":0,"part":"single","value":1},{"kind":"varbit","value":1660,"bits":11},
{"kind":"separator"},{"kind":"separator"},{"kind":"part","index":8,"part":"none"},
{"kind":"part","index":14,"part":"none"},{"kind":"part","index":252,"part":"single","value":97}]`

	var encoded bytes.Buffer
	if err := runEncode(strings.NewReader(input), &encoded, true, discardLogger()); err != nil {
		t.Fatalf("runEncode: %v", err)
	}
	if got := strings.TrimSpace(encoded.String()); got != goldenSerial {
		t.Errorf("encoded = %q, want %q", got, goldenSerial)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := map[string]string{
		"empty input":     "",
		"no tokens field": `{"serial":"@Ug"}`,
		"invalid token":   `[{"kind":"varint","value":70000}]`,
		"unknown kind":    `[{"kind":"bogus"}]`,
		"broken json":     `[{"kind":`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var encoded bytes.Buffer
			if err := runEncode(strings.NewReader(input), &encoded, true, discardLogger()); err == nil {
				t.Errorf("runEncode(%q) succeeded with %q", input, encoded.String())
			}
		})
	}
}

func TestBatchAndReport(t *testing.T) {
	input := strings.Join([]string{
		"# weapons",
		goldenSerial,
		"",
		goldenSerial,
		"@Ug!!",
	}, "\n")

	results, err := runBatch(context.Background(), strings.NewReader(input), 2, discardLogger())
	if err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[2].Line != 5 || !results[2].Failed() {
		t.Errorf("third result = %+v, want a failure on line 5", results[2])
	}

	path := filepath.Join(t.TempDir(), "results.cbor.zst")
	if err := batch.WriteFile(path, results); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	reread, err := batch.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var output bytes.Buffer
	if err := runReport(&output, reread, reportParams{Failures: true}); err != nil {
		t.Fatalf("runReport: %v", err)
	}
	text := output.String()
	for _, want := range []string{
		"Total:       3",
		"Decoded:     2",
		"Failed:      1",
		"Duplicates:  1",
		"  r      2",
		"line 5: @Ug!!:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}

	output.Reset()
	if err := runReport(&output, reread, reportParams{JSONOutput: cli.JSONOutput{OutputJSON: true}}); err != nil {
		t.Fatalf("runReport(json): %v", err)
	}
	var summary batch.Summary
	if err := json.Unmarshal(output.Bytes(), &summary); err != nil {
		t.Fatalf("summary is not JSON: %v", err)
	}
	if summary.Total != 3 || summary.ByType["r"] != 2 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runBatch(ctx, strings.NewReader(goldenSerial+"\n"+goldenSerial), 1, discardLogger())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("runBatch error = %v, want context.Canceled", err)
	}
}

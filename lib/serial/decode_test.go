// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"errors"
	"testing"

	"github.com/lootforge/lootforge/lib/bitstream"
)

// bits is one field of a hand-built payload: width bits of value.
type bits struct {
	width int
	value uint64
}

// buildPayload writes the magic followed by fields, zero-padded to a
// byte boundary.
func buildPayload(t *testing.T, fields ...bits) []byte {
	t.Helper()
	writer := bitstream.NewWriter(64)
	if err := writer.WriteBits(magicBits, Magic); err != nil {
		t.Fatalf("WriteBits(magic): %v", err)
	}
	for _, field := range fields {
		if err := writer.WriteBits(field.width, field.value); err != nil {
			t.Fatalf("WriteBits(%d, %#b): %v", field.width, field.value, err)
		}
	}
	writer.PadToByte()
	return writer.Bytes()
}

func TestTokenizeVarBitZeroLength(t *testing.T) {
	// A zero-length VarBit is its prefix and the 5-bit length only; the
	// VarInt that follows must start right after.
	payload := buildPayload(t,
		bits{3, prefixVarBit}, bits{5, 0},
		bits{3, prefixVarInt}, bits{5, 0b0111_0},
		bits{2, prefixSeparator},
	)
	tokens, warnings, err := Tokenize(payload)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{VarBit(0, 0), VarInt(7), Separator()}
	if !EqualTokens(tokens, want) {
		t.Errorf("tokens = %s, want %s", Format(tokens, nil), Format(want, nil))
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestTokenizePartVariants(t *testing.T) {
	payload := buildPayload(t,
		// {3}
		bits{3, prefixPart}, bits{5, 0b0011_0}, bits{1, 0}, bits{2, partSubtypeNone},
		// {5:[1 18]}
		bits{3, prefixPart}, bits{5, 0b0101_0}, bits{1, 0}, bits{2, partSubtypeList},
		bits{3, prefixVarInt}, bits{5, 0b0001_0},
		bits{3, prefixVarInt}, bits{5, 0b0010_1}, bits{5, 0b0001_0},
		bits{2, partListTerminator},
		// {2:[]}
		bits{3, prefixPart}, bits{5, 0b0010_0}, bits{1, 0}, bits{2, partSubtypeList},
		bits{2, partListTerminator},
		// {1:9}
		bits{3, prefixPart}, bits{5, 0b0001_0}, bits{1, 1}, bits{5, 0b1001_0}, bits{3, 0},
		bits{2, prefixSeparator},
	)
	tokens, _, err := Tokenize(payload)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{
		PartNoValue(3),
		PartWithList(5, 1, 18),
		PartWithList(2),
		PartWithValue(1, 9),
		Separator(),
	}
	if !EqualTokens(tokens, want) {
		t.Errorf("tokens = %s, want %s", Format(tokens, nil), Format(want, nil))
	}
}

func TestTokenizeMalformedPart(t *testing.T) {
	tests := []struct {
		name   string
		fields []bits
	}{
		{"subtype 11", []bits{
			{3, prefixPart}, {5, 0b0011_0}, {1, 0}, {2, 0b11}, {2, prefixSeparator},
		}},
		{"subtype 00", []bits{
			{3, prefixPart}, {5, 0b0011_0}, {1, 0}, {2, 0b00}, {2, prefixSeparator},
		}},
		{"value terminator", []bits{
			{3, prefixPart}, {5, 0b0011_0}, {1, 1}, {5, 0b0001_0}, {3, 0b010}, {2, prefixSeparator},
		}},
		{"list element prefix", []bits{
			{3, prefixPart}, {5, 0b0011_0}, {1, 0}, {2, partSubtypeList}, {3, prefixVarBit}, {5, 0},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload := buildPayload(t, append([]bits{{3, prefixVarInt}, {5, 0b0001_0}}, test.fields...)...)
			tokens, _, err := Tokenize(payload)
			if !errors.Is(err, ErrMalformedPart) {
				t.Fatalf("Tokenize error = %v, want ErrMalformedPart", err)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("error %T is not a *DecodeError", err)
			}
			// The part starts after the magic and the 8-bit VarInt.
			if decodeErr.BitOffset != magicBits+8 {
				t.Errorf("BitOffset = %d, want %d", decodeErr.BitOffset, magicBits+8)
			}
			if len(tokens) != 1 || !tokens[0].Equal(VarInt(1)) {
				t.Errorf("partial tokens = %s, want 1", Format(tokens, nil))
			}
		})
	}
}

func TestTokenizeString(t *testing.T) {
	payload := buildPayload(t,
		bits{3, prefixString}, bits{5, 0b0010_0},
		bits{7, 'o'}, bits{7, 'k'},
		bits{2, prefixSeparator},
	)
	tokens, _, err := Tokenize(payload)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{StringToken("ok"), Separator()}
	if !EqualTokens(tokens, want) {
		t.Errorf("tokens = %s, want %s", Format(tokens, nil), Format(want, nil))
	}
}

func TestTokenizeNonCanonicalVarInt(t *testing.T) {
	tests := []struct {
		name   string
		fields []bits
		want   uint16
	}{
		// 5 written as two nibbles: 0101 (more) 0000 (stop).
		{"zero high nibble", []bits{{5, 0b0101_1}, {5, 0b0000_0}}, 5},
		// Continuation bit set on the fourth nibble.
		{"fourth nibble continues", []bits{{5, 0b0001_1}, {5, 0b0000_1}, {5, 0b0000_1}, {5, 0b0001_1}}, 0x1001},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fields := append([]bits{{3, prefixVarInt}}, test.fields...)
			payload := buildPayload(t, append(fields, bits{2, prefixSeparator})...)
			tokens, warnings, err := Tokenize(payload)
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			want := []Token{VarInt(test.want), Separator()}
			if !EqualTokens(tokens, want) {
				t.Errorf("tokens = %s, want %s", Format(tokens, nil), Format(want, nil))
			}
			if len(warnings) != 1 || warnings[0].Kind != WarningNonCanonical {
				t.Fatalf("warnings = %v, want one non-canonical warning", warnings)
			}
			if warnings[0].BitOffset != magicBits+3 {
				t.Errorf("warning BitOffset = %d, want %d", warnings[0].BitOffset, magicBits+3)
			}
		})
	}
}

func TestTokenizeTrailingBits(t *testing.T) {
	// Magic plus four soft separators is 15 bits; the 16th bit is set
	// and too short to be a token.
	payload := buildPayload(t,
		bits{2, prefixSoftSeparator}, bits{2, prefixSoftSeparator},
		bits{2, prefixSoftSeparator}, bits{2, prefixSoftSeparator},
		bits{1, 1},
	)
	tokens, warnings, err := Tokenize(payload)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(tokens) != 4 {
		t.Errorf("got %d tokens, want 4", len(tokens))
	}
	if len(warnings) != 1 || warnings[0].Kind != WarningTrailingBits {
		t.Fatalf("warnings = %v, want one trailing-bits warning", warnings)
	}
	if warnings[0].BitOffset != 15 {
		t.Errorf("warning BitOffset = %d, want 15", warnings[0].BitOffset)
	}
}

func TestTokenizeSeparatorTerminatesOnlyBeforePadding(t *testing.T) {
	// A separator followed by more tokens is a section boundary; the
	// final separator is followed only by padding.
	payload := buildPayload(t,
		bits{3, prefixVarInt}, bits{5, 0b0001_0},
		bits{2, prefixSeparator},
		bits{3, prefixVarInt}, bits{5, 0b0010_0},
		bits{2, prefixSeparator},
	)
	// Extra zero bytes after the terminator are padding too.
	payload = append(payload, 0, 0)

	tokens, warnings, err := Tokenize(payload)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{VarInt(1), Separator(), VarInt(2), Separator()}
	if !EqualTokens(tokens, want) {
		t.Errorf("tokens = %s, want %s", Format(tokens, nil), Format(want, nil))
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestTokenizeDirtyPaddingAfterTerminator(t *testing.T) {
	// VarInt(1) and its terminator end at bit 17; the seven padding
	// bits 1010000 start a part header that cannot complete.
	payload := buildPayload(t,
		bits{3, prefixVarInt}, bits{5, 0b0001_0},
		bits{2, prefixSeparator},
		bits{7, 0b1010000},
	)
	tokens, warnings, err := Tokenize(payload)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{VarInt(1), Separator()}
	if !EqualTokens(tokens, want) {
		t.Errorf("tokens = %s, want %s", Format(tokens, nil), Format(want, nil))
	}
	if len(warnings) != 1 || warnings[0].Kind != WarningTrailingBits {
		t.Fatalf("warnings = %v, want one trailing-bits warning", warnings)
	}
	if warnings[0].BitOffset != 17 {
		t.Errorf("warning BitOffset = %d, want 17", warnings[0].BitOffset)
	}

	// The same payload as a serial string.
	serial, err := Decode("@Ugdhq")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !EqualTokens(serial.Tokens, want) {
		t.Errorf("Decode tokens = %s, want %s", Format(serial.Tokens, nil), Format(want, nil))
	}
	if len(serial.Warnings) != 1 || serial.Warnings[0].Kind != WarningTrailingBits {
		t.Errorf("Decode warnings = %v, want one trailing-bits warning", serial.Warnings)
	}
}

func TestTokenizeShortFinalSection(t *testing.T) {
	tests := []struct {
		name         string
		padding      bits
		wantWarnings int
	}{
		// Magic, VarInt, Separator, SoftSeparator, Separator is 21 bits:
		// the last section fits in the seven bits after the first
		// Separator and must still be read.
		{"clean padding", bits{3, 0b000}, 0},
		{"dirty padding", bits{3, 0b100}, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload := buildPayload(t,
				bits{3, prefixVarInt}, bits{5, 0b0001_0},
				bits{2, prefixSeparator},
				bits{2, prefixSoftSeparator},
				bits{2, prefixSeparator},
				test.padding,
			)
			tokens, warnings, err := Tokenize(payload)
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			want := []Token{VarInt(1), Separator(), SoftSeparator(), Separator()}
			if !EqualTokens(tokens, want) {
				t.Errorf("tokens = %s, want %s", Format(tokens, nil), Format(want, nil))
			}
			if len(warnings) != test.wantWarnings {
				t.Fatalf("warnings = %v, want %d", warnings, test.wantWarnings)
			}
			if test.wantWarnings > 0 && (warnings[0].Kind != WarningTrailingBits || warnings[0].BitOffset != 21) {
				t.Errorf("warning = %+v, want trailing bits at 21", warnings[0])
			}
		})
	}
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package base85

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"
)

func TestAlphabet(t *testing.T) {
	if len(Alphabet) != 85 {
		t.Fatalf("alphabet has %d symbols, want 85", len(Alphabet))
	}
	seen := make(map[byte]bool)
	for index := range len(Alphabet) {
		if seen[Alphabet[index]] {
			t.Errorf("symbol %q appears twice", Alphabet[index])
		}
		seen[Alphabet[index]] = true
	}
}

func TestEncodeKnownVectors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, ""},
		{"one zero byte", []byte{0x00}, "00"},
		{"one high byte", []byte{0xFF}, "{{"},
		{"two zero bytes", []byte{0x00, 0x00}, "000"},
		{"three high bytes", []byte{0xFF, 0xFF, 0xFF}, "/Ns9"},
		{"zero group", []byte{0, 0, 0, 0}, "00000"},
		{"max group", []byte{0xFF, 0xFF, 0xFF, 0xFF}, "/NsC0"},
		{"text", []byte("hello"), "Xk~0{Zv"},
		{"serial head", []byte{0x84, 0xA5, 0x86, 0x06}, "gr$ZC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.data)
			if got != tt.want {
				t.Errorf("Encode(%x) = %q, want %q", tt.data, got, tt.want)
			}
			decoded, err := Decode(tt.want)
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.want, err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("Decode(%q) = %x, want %x", tt.want, decoded, tt.data)
			}
		})
	}
}

func TestDecodeSerialPayload(t *testing.T) {
	decoded, err := Decode("gr$ZCm/&tH!t{KgK/Shxu>k")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []byte{
		0x84, 0xa5, 0x86, 0x06, 0x98, 0x60, 0xa2, 0x20, 0xc2,
		0xf4, 0x7c, 0xa0, 0x41, 0x3d, 0xea, 0x7c, 0xb1, 0x01,
	}
	if !bytes.Equal(decoded, want) {
		t.Errorf("Decode = %x, want %x", decoded, want)
	}
}

func TestRoundTripBytes(t *testing.T) {
	random := rand.New(rand.NewPCG(85, 4))
	for trial := range 1000 {
		data := make([]byte, random.IntN(97))
		for index := range data {
			data[index] = byte(random.Uint32())
		}
		text := Encode(data)
		if len(text) != EncodedLen(len(data)) {
			t.Fatalf("trial %d: encoded length %d, EncodedLen says %d", trial, len(text), EncodedLen(len(data)))
		}
		decoded, err := Decode(text)
		if err != nil {
			t.Fatalf("trial %d: Decode(%q): %v", trial, text, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("trial %d: round trip of %x produced %x", trial, data, decoded)
		}
		if DecodedLen(len(text)) != len(data) {
			t.Fatalf("trial %d: DecodedLen(%d) = %d, want %d", trial, len(text), DecodedLen(len(text)), len(data))
		}
	}
}

func TestRoundTripText(t *testing.T) {
	// Whole groups of symbols whose value fits in 32 bits re-encode
	// to the same text.
	random := rand.New(rand.NewPCG(3, 9))
	for trial := range 500 {
		data := make([]byte, 4*random.IntN(8))
		for index := range data {
			data[index] = byte(random.Uint32())
		}
		text := Encode(data)
		decoded, err := Decode(text)
		if err != nil {
			t.Fatalf("trial %d: Decode: %v", trial, err)
		}
		if again := Encode(decoded); again != text {
			t.Fatalf("trial %d: Encode(Decode(%q)) = %q", trial, text, again)
		}
	}
}

func TestDecodeInvalidSymbol(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		symbol rune
	}{
		{"space", "gr$Z C", 4, ' '},
		{"double quote last", "gr$ZCm/&tH!t{KgK/Shxu>\"", 22, '"'},
		{"backslash", `\0000`, 0, '\\'},
		{"multibyte", "00é00", 2, 'é'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			if !errors.Is(err, ErrInvalidSymbol) {
				t.Fatalf("Decode(%q) error = %v, want ErrInvalidSymbol", tt.input, err)
			}
			var symbolError *SymbolError
			if !errors.As(err, &symbolError) {
				t.Fatalf("error %v is not a *SymbolError", err)
			}
			if symbolError.Offset != tt.offset || symbolError.Symbol != tt.symbol {
				t.Errorf("got offset %d symbol %q, want offset %d symbol %q",
					symbolError.Offset, symbolError.Symbol, tt.offset, tt.symbol)
			}
		})
	}
}

func TestDecodeGroupOverflow(t *testing.T) {
	// "~~~~~" is 85^5-1, well above 2^32-1.
	_, err := Decode("~~~~~")
	if !errors.Is(err, ErrGroupOverflow) {
		t.Fatalf("Decode error = %v, want ErrGroupOverflow", err)
	}
}

func TestDecodeTruncatedGroup(t *testing.T) {
	for _, text := range []string{"0", "~", "00000~", "0000000000A"} {
		decoded, err := Decode(text)
		if !errors.Is(err, ErrTruncatedGroup) {
			t.Errorf("Decode(%q) = %x, %v; want ErrTruncatedGroup", text, decoded, err)
		}
	}
	// One symbol more is a valid two-symbol group.
	decoded, err := Decode("0000000")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, make([]byte, 5)) {
		t.Errorf("Decode(%q) = %x, want 0000000000", "0000000", decoded)
	}
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package bitstream

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"
)

func TestReaderReadBits(t *testing.T) {
	// 0x84 0xA5 = 1000 0100 1010 0101
	reader := NewReader([]byte{0x84, 0xA5})

	steps := []struct {
		width int
		want  uint64
	}{
		{1, 0b1},
		{6, 0b000010},
		{3, 0b010},
		{0, 0},
		{6, 0b100101},
	}
	for _, step := range steps {
		got, err := reader.ReadBits(step.width)
		if err != nil {
			t.Fatalf("ReadBits(%d) at %d: %v", step.width, reader.Consumed(), err)
		}
		if got != step.want {
			t.Errorf("ReadBits(%d) = %#b, want %#b", step.width, got, step.want)
		}
	}
	if reader.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", reader.Remaining())
	}
}

func TestReaderOutOfData(t *testing.T) {
	reader := NewReader([]byte{0xFF})
	if _, err := reader.ReadBits(5); err != nil {
		t.Fatalf("ReadBits(5): %v", err)
	}

	_, err := reader.ReadBits(4)
	if !errors.Is(err, ErrOutOfData) {
		t.Fatalf("ReadBits(4) error = %v, want ErrOutOfData", err)
	}
	if reader.Consumed() != 5 {
		t.Errorf("failed read moved the cursor to %d, want 5", reader.Consumed())
	}
}

func TestReaderPeekDoesNotAdvance(t *testing.T) {
	reader := NewReader([]byte{0b0110_0000})
	peeked, err := reader.PeekBits(3)
	if err != nil {
		t.Fatalf("PeekBits: %v", err)
	}
	read, err := reader.ReadBits(3)
	if err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if peeked != read || read != 0b011 {
		t.Errorf("peek %#b, read %#b, want both 0b011", peeked, read)
	}
}

func TestReaderRemainingZero(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		skip   int
		expect bool
	}{
		{"empty", nil, 0, true},
		{"all zero", []byte{0, 0}, 0, true},
		{"high bits consumed", []byte{0b1110_0000, 0}, 3, true},
		{"bit in partial byte", []byte{0b1110_0001, 0}, 3, false},
		{"bit in later byte", []byte{0b1000_0000, 0, 1}, 1, false},
		{"exhausted", []byte{0xFF}, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewReader(tt.data)
			if _, err := reader.ReadBits(tt.skip); err != nil {
				t.Fatalf("ReadBits(%d): %v", tt.skip, err)
			}
			if got := reader.RemainingZero(); got != tt.expect {
				t.Errorf("RemainingZero() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestWriterWriteBits(t *testing.T) {
	var writer Writer
	mustWrite := func(width int, value uint64) {
		t.Helper()
		if err := writer.WriteBits(width, value); err != nil {
			t.Fatalf("WriteBits(%d, %#x): %v", width, value, err)
		}
	}
	mustWrite(7, 0b0010000)
	mustWrite(3, 0b110)
	mustWrite(5, 0b10010)
	if writer.Written() != 15 {
		t.Fatalf("Written() = %d, want 15", writer.Written())
	}
	if padded := writer.PadToByte(); padded != 1 {
		t.Errorf("PadToByte() = %d, want 1", padded)
	}
	if padded := writer.PadToByte(); padded != 0 {
		t.Errorf("second PadToByte() = %d, want 0", padded)
	}

	want := []byte{0b0010000_1, 0b10_10010_0}
	if !bytes.Equal(writer.Bytes(), want) {
		t.Errorf("Bytes() = %08b, want %08b", writer.Bytes(), want)
	}
}

func TestWriterIgnoresHighBits(t *testing.T) {
	var writer Writer
	if err := writer.WriteBits(4, 0xFFF3); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	writer.PadToByte()
	if got := writer.Bytes(); !bytes.Equal(got, []byte{0x30}) {
		t.Errorf("Bytes() = %#x, want 0x30", got)
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	random := rand.New(rand.NewPCG(7, 11))

	type field struct {
		width int
		value uint64
	}
	fields := make([]field, 2000)
	writer := NewWriter(0)
	for index := range fields {
		width := random.IntN(MaxReadBits + 1)
		value := random.Uint64()
		if width < 64 {
			value &= 1<<width - 1
		}
		fields[index] = field{width, value}
		if err := writer.WriteBits(width, value); err != nil {
			t.Fatalf("WriteBits: %v", err)
		}
	}
	total := writer.Written()
	writer.PadToByte()

	reader := NewReader(writer.Bytes())
	for index, f := range fields {
		got, err := reader.ReadBits(f.width)
		if err != nil {
			t.Fatalf("field %d: ReadBits(%d): %v", index, f.width, err)
		}
		if got != f.value {
			t.Fatalf("field %d: got %#x, want %#x", index, got, f.value)
		}
	}
	if reader.Consumed() != total {
		t.Errorf("Consumed() = %d, want %d", reader.Consumed(), total)
	}
	if !reader.RemainingZero() {
		t.Error("padding bits are not zero")
	}
}

func TestWidthBounds(t *testing.T) {
	if _, err := NewReader(make([]byte, 16)).ReadBits(65); err == nil {
		t.Error("ReadBits(65) succeeded")
	}
	var writer Writer
	if err := writer.WriteBits(-1, 0); err == nil {
		t.Error("WriteBits(-1) succeeded")
	}
}

func TestMirrorByte(t *testing.T) {
	tests := []struct{ in, want byte }{
		{0x00, 0x00},
		{0x01, 0x80},
		{0x84, 0x21},
		{0xF0, 0x0F},
		{0xA5, 0xA5},
		{0xFF, 0xFF},
	}
	for _, tt := range tests {
		if got := MirrorByte(tt.in); got != tt.want {
			t.Errorf("MirrorByte(%#02x) = %#02x, want %#02x", tt.in, got, tt.want)
		}
	}
}

func TestMirrorInvolution(t *testing.T) {
	random := rand.New(rand.NewPCG(1, 2))
	for trial := range 200 {
		data := make([]byte, random.IntN(64))
		for index := range data {
			data[index] = byte(random.Uint32())
		}
		mirrored := Mirror(data)
		if len(data) > 0 && &mirrored[0] == &data[0] {
			t.Fatal("Mirror returned its input slice")
		}
		if back := Mirror(mirrored); !bytes.Equal(back, data) {
			t.Fatalf("trial %d: Mirror(Mirror(%x)) = %x", trial, data, back)
		}
	}
}

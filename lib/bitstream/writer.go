// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package bitstream

import "fmt"

// Writer appends bits MSB-first to a growable buffer. The zero value is
// an empty writer ready for use.
type Writer struct {
	data    []byte
	written int
}

// NewWriter returns a Writer whose buffer is preallocated for
// capacityBits bits.
func NewWriter(capacityBits int) *Writer {
	return &Writer{data: make([]byte, 0, (capacityBits+7)/8)}
}

// Written returns the number of bits written so far.
func (w *Writer) Written() int {
	return w.written
}

// WriteBits appends the low n bits of value, most significant of those
// bits first. n must be in [0, 64]; bits of value above n are ignored.
func (w *Writer) WriteBits(n int, value uint64) error {
	if n < 0 || n > MaxReadBits {
		return fmt.Errorf("bitstream: write width %d outside [0, %d]", n, MaxReadBits)
	}
	for remaining := n; remaining > 0; {
		bitInByte := w.written % 8
		if bitInByte == 0 {
			w.data = append(w.data, 0)
		}
		free := 8 - bitInByte
		take := min(free, remaining)

		chunk := byte(value>>(remaining-take)) & byte(1<<take-1)
		w.data[len(w.data)-1] |= chunk << (free - take)

		w.written += take
		remaining -= take
	}
	return nil
}

// WriteBit appends a single bit.
func (w *Writer) WriteBit(bit bool) error {
	if bit {
		return w.WriteBits(1, 1)
	}
	return w.WriteBits(1, 0)
}

// PadToByte appends zero bits up to the next byte boundary and returns
// the number of bits added. A writer already on a boundary is unchanged.
func (w *Writer) PadToByte() int {
	padding := (8 - w.written%8) % 8
	// The partial byte is already zero-filled below the written bits.
	w.written += padding
	return padding
}

// Bytes returns the written buffer. A trailing partial byte holds zero
// bits after the last written bit. The slice aliases the writer's
// storage until the next write.
func (w *Writer) Bytes() []byte {
	return w.data
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package bitstream

import (
	"errors"
	"fmt"
)

// ErrOutOfData is returned when a read requests more bits than remain
// in the buffer. Callers match it with errors.Is; the wrapping error
// carries the bit offset at which the read was attempted.
var ErrOutOfData = errors.New("out of data")

// MaxReadBits is the widest single read or write supported.
const MaxReadBits = 64

// Reader reads bits MSB-first from a byte slice. The zero value reads
// from an empty buffer. A Reader never modifies its buffer.
type Reader struct {
	data   []byte
	offset int
}

// NewReader returns a Reader positioned at bit 0 of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the total number of bits in the buffer.
func (r *Reader) Len() int {
	return len(r.data) * 8
}

// Consumed returns the absolute bit offset of the next read.
func (r *Reader) Consumed() int {
	return r.offset
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return r.Len() - r.offset
}

// ReadBits reads n bits and returns them right-aligned in a uint64,
// first bit read in the most significant position. n must be in
// [0, 64]. On failure the cursor does not move.
func (r *Reader) ReadBits(n int) (uint64, error) {
	value, err := r.PeekBits(n)
	if err != nil {
		return 0, err
	}
	r.offset += n
	return value, nil
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	value, err := r.ReadBits(1)
	return value == 1, err
}

// PeekBits returns the next n bits without advancing the cursor.
func (r *Reader) PeekBits(n int) (uint64, error) {
	if n < 0 || n > MaxReadBits {
		return 0, fmt.Errorf("bitstream: read width %d outside [0, %d]", n, MaxReadBits)
	}
	if n > r.Remaining() {
		return 0, fmt.Errorf("reading %d bits at bit %d with %d remaining: %w",
			n, r.offset, r.Remaining(), ErrOutOfData)
	}

	var value uint64
	position := r.offset
	for remaining := n; remaining > 0; {
		current := r.data[position/8]
		bitInByte := position % 8
		available := 8 - bitInByte
		take := min(available, remaining)

		// Drop the bits already consumed from this byte, then keep
		// the top `take` bits of what is left.
		chunk := (current << bitInByte) >> (8 - take)
		value = value<<take | uint64(chunk)

		position += take
		remaining -= take
	}
	return value, nil
}

// RemainingZero reports whether every unread bit is zero. An exhausted
// reader reports true.
func (r *Reader) RemainingZero() bool {
	if r.Remaining() == 0 {
		return true
	}
	byteIndex := r.offset / 8
	bitInByte := r.offset % 8
	if r.data[byteIndex]<<bitInByte != 0 {
		return false
	}
	for _, b := range r.data[byteIndex+1:] {
		if b != 0 {
			return false
		}
	}
	return true
}

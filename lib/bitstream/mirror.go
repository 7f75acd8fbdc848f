// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package bitstream

// mirrorTable maps each byte to its bit-reversed value.
var mirrorTable = func() (table [256]byte) {
	for value := range 256 {
		var reversed byte
		for bit := range 8 {
			if value&(1<<bit) != 0 {
				reversed |= 1 << (7 - bit)
			}
		}
		table[value] = reversed
	}
	return table
}()

// MirrorByte reverses the bit order of b (bit 0 ↔ bit 7, bit 1 ↔ bit 6, ...).
func MirrorByte(b byte) byte {
	return mirrorTable[b]
}

// Mirror returns a new slice with the bit order of every byte
// reversed. Applying Mirror twice yields the original bytes.
func Mirror(data []byte) []byte {
	output := make([]byte, len(data))
	for index, b := range data {
		output[index] = mirrorTable[b]
	}
	return output
}

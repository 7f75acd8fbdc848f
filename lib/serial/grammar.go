// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

// Bit-level grammar constants. These are format constants: changing
// any of them makes every existing serial unreadable.
const (
	// Magic is the 7-bit value that opens every serial payload.
	Magic     = 0b0010000
	magicBits = 7

	shortPrefixBits = 2
	longPrefixBits  = 3

	prefixSeparator     = 0b00
	prefixSoftSeparator = 0b01
	prefixVarInt        = 0b100
	prefixPart          = 0b101
	prefixVarBit        = 0b110
	prefixString        = 0b111

	nibbleBits     = 4
	maxNibbles     = 4
	varIntMaxValue = 1<<(nibbleBits*maxNibbles) - 1

	varBitLengthBits = 5
	maxVarBitLength  = 1<<varBitLengthBits - 1

	partSubtypeBits       = 2
	partSubtypeNone       = 0b10
	partSubtypeList       = 0b01
	partSingleTermBits    = 3
	partListTerminator    = 0b00
	partListElementPrefix = prefixVarInt

	stringCharBits = 7
)

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"fmt"

	"github.com/lootforge/lootforge/lib/bitstream"
)

// EncodeTokens writes tokens as a mirrored serial payload: the magic,
// each token in order, a terminating Separator unless the sequence
// already ends with one, and zero padding to a byte boundary.
//
// VarInts are always written in minimal form, so a payload decoded
// with [WarningNonCanonical] does not re-encode to the same bytes.
// A token that cannot be represented returns an error wrapping
// [ErrInvalidToken] and no payload.
func EncodeTokens(tokens []Token) ([]byte, error) {
	for index, token := range tokens {
		if err := validateToken(token); err != nil {
			return nil, fmt.Errorf("token %d (%v): %w", index, token.Kind, err)
		}
	}

	e := &encoder{writer: bitstream.NewWriter(64 + 16*len(tokens))}
	e.bits(magicBits, Magic)
	for _, token := range tokens {
		e.token(token)
	}
	if len(tokens) == 0 || !tokens[len(tokens)-1].IsSeparator() {
		e.token(Separator())
	}
	if e.err != nil {
		return nil, e.err
	}
	e.writer.PadToByte()
	return e.writer.Bytes(), nil
}

func validateToken(token Token) error {
	switch token.Kind {
	case KindSeparator, KindSoftSeparator:
		return nil
	case KindVarInt:
		if token.Value > varIntMaxValue {
			return fmt.Errorf("%w: varint %d exceeds %d", ErrInvalidToken, token.Value, varIntMaxValue)
		}
	case KindVarBit:
		if token.BitLength > maxVarBitLength {
			return fmt.Errorf("%w: varbit length %d exceeds %d", ErrInvalidToken, token.BitLength, maxVarBitLength)
		}
		if token.Value>>token.BitLength != 0 {
			return fmt.Errorf("%w: varbit value %d does not fit in %d bits", ErrInvalidToken, token.Value, token.BitLength)
		}
	case KindPart:
		switch token.Part.Kind {
		case PartNone, PartSingle, PartList:
		default:
			return fmt.Errorf("%w: part %d has %v", ErrInvalidToken, token.Index, token.Part.Kind)
		}
	case KindString:
		if len(token.Bytes) > varIntMaxValue {
			return fmt.Errorf("%w: string of %d bytes exceeds %d", ErrInvalidToken, len(token.Bytes), varIntMaxValue)
		}
		for offset, char := range token.Bytes {
			if char >= 1<<stringCharBits {
				return fmt.Errorf("%w: string byte %#x at %d is not 7-bit ASCII", ErrInvalidToken, char, offset)
			}
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, token.Kind)
	}
	return nil
}

// encoder keeps the first write error and turns later writes into
// no-ops, so token emitters need no error plumbing.
type encoder struct {
	writer *bitstream.Writer
	err    error
}

func (e *encoder) bits(n int, value uint64) {
	if e.err != nil {
		return
	}
	e.err = e.writer.WriteBits(n, value)
}

func (e *encoder) token(token Token) {
	switch token.Kind {
	case KindSeparator:
		e.bits(shortPrefixBits, prefixSeparator)
	case KindSoftSeparator:
		e.bits(shortPrefixBits, prefixSoftSeparator)
	case KindVarInt:
		e.bits(longPrefixBits, prefixVarInt)
		e.varInt(uint16(token.Value))
	case KindVarBit:
		e.bits(longPrefixBits, prefixVarBit)
		e.bits(varBitLengthBits, uint64(token.BitLength))
		e.bits(int(token.BitLength), token.Value)
	case KindPart:
		e.bits(longPrefixBits, prefixPart)
		e.part(token.Index, token.Part)
	case KindString:
		e.bits(longPrefixBits, prefixString)
		e.varInt(uint16(len(token.Bytes)))
		for _, char := range token.Bytes {
			e.bits(stringCharBits, uint64(char))
		}
	}
}

// varInt writes the fewest nibbles that hold value, low nibble first.
func (e *encoder) varInt(value uint16) {
	remaining := uint64(value)
	for nibble := range maxNibbles {
		digit := remaining & (1<<nibbleBits - 1)
		remaining >>= nibbleBits
		more := remaining != 0 && nibble < maxNibbles-1
		group := digit << 1
		if more {
			group |= 1
		}
		e.bits(nibbleBits+1, group)
		if !more {
			return
		}
	}
}

func (e *encoder) part(index uint16, value PartValue) {
	e.varInt(index)
	switch value.Kind {
	case PartSingle:
		e.bits(1, 1)
		e.varInt(value.Single)
		e.bits(partSingleTermBits, 0)
	case PartNone:
		e.bits(1, 0)
		e.bits(partSubtypeBits, partSubtypeNone)
	case PartList:
		e.bits(1, 0)
		e.bits(partSubtypeBits, partSubtypeList)
		for _, element := range value.List {
			e.bits(longPrefixBits, partListElementPrefix)
			e.varInt(element)
		}
		e.bits(shortPrefixBits, partListTerminator)
	}
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"errors"
	"fmt"

	"github.com/lootforge/lootforge/lib/bitstream"
)

// Tokenize reads the token sequence from a mirrored serial payload.
//
// The payload must open with [Magic]. Tokens are read until a
// Separator is followed only by zero bits (the terminator and its
// padding) or fewer than two bits remain. A Separator followed by
// non-zero bits is a section boundary and reading continues, except
// when fewer than 8 bits follow and they do not read as tokens ending
// in a Separator: those bits are the final byte's padding, so reading
// stops with [WarningTrailingBits].
//
// On failure the returned error is a [*DecodeError] and the returned
// tokens are the partial sequence, which must not be treated as a
// complete decode.
func Tokenize(payload []byte) ([]Token, []Warning, error) {
	t := &tokenizer{reader: bitstream.NewReader(payload)}
	err := t.run()
	return t.tokens, t.warnings, err
}

type tokenizer struct {
	reader   *bitstream.Reader
	tokens   []Token
	warnings []Warning

	// tokenStart is the bit offset of the token being decoded, used
	// as the error location.
	tokenStart int
}

func (t *tokenizer) run() error {
	magic, err := t.reader.ReadBits(magicBits)
	if err != nil {
		return t.fail(ErrBadMagic, fmt.Sprintf("payload has %d bits, magic needs %d", t.reader.Len(), magicBits))
	}
	if magic != Magic {
		return t.fail(ErrBadMagic, fmt.Sprintf("got %07b, want %07b", magic, Magic))
	}
	return t.readTokens()
}

func (t *tokenizer) readTokens() error {
	for t.reader.Remaining() >= shortPrefixBits {
		t.tokenStart = t.reader.Consumed()

		prefix, err := t.reader.ReadBits(shortPrefixBits)
		if err != nil {
			return t.failRead(err)
		}
		switch prefix {
		case prefixSeparator:
			t.tokens = append(t.tokens, Separator())
			if t.reader.RemainingZero() {
				return nil
			}
			if t.reader.Remaining() < 8 {
				if !t.readSection() {
					t.warn(WarningTrailingBits, t.reader.Consumed(),
						fmt.Sprintf("%d padding bits after the terminator are not zero", t.reader.Remaining()))
				}
				return nil
			}
			continue
		case prefixSoftSeparator:
			t.tokens = append(t.tokens, SoftSeparator())
			continue
		}

		low, err := t.reader.ReadBits(1)
		if err != nil {
			return t.failRead(err)
		}
		token, err := t.readToken(prefix<<1 | low)
		if err != nil {
			return err
		}
		t.tokens = append(t.tokens, token)
	}

	if !t.reader.RemainingZero() {
		t.warn(WarningTrailingBits, t.reader.Consumed(),
			fmt.Sprintf("%d trailing bits are not zero", t.reader.Remaining()))
	}
	return nil
}

// readSection tries to read the bits after a Separator as the final
// section, to the end of the payload. It succeeds only if they decode
// cleanly and end in a Separator; the tokens and warnings are then
// kept. Otherwise the tokenizer is left untouched.
func (t *tokenizer) readSection() bool {
	reader := *t.reader
	section := &tokenizer{reader: &reader}
	if err := section.readTokens(); err != nil {
		return false
	}
	if len(section.tokens) == 0 || section.tokens[len(section.tokens)-1].Kind != KindSeparator {
		return false
	}
	t.reader = section.reader
	t.tokens = append(t.tokens, section.tokens...)
	t.warnings = append(t.warnings, section.warnings...)
	return true
}

// readToken decodes the payload of a token whose 3-bit prefix has
// already been consumed.
func (t *tokenizer) readToken(prefix uint64) (Token, error) {
	switch prefix {
	case prefixVarInt:
		value, err := t.readVarInt()
		if err != nil {
			return Token{}, err
		}
		return VarInt(value), nil

	case prefixPart:
		return t.readPart()

	case prefixVarBit:
		length, err := t.reader.ReadBits(varBitLengthBits)
		if err != nil {
			return Token{}, t.failRead(err)
		}
		if length == 0 {
			return VarBit(0, 0), nil
		}
		value, err := t.reader.ReadBits(int(length))
		if err != nil {
			return Token{}, t.failRead(err)
		}
		return VarBit(value, uint8(length)), nil

	case prefixString:
		length, err := t.readVarInt()
		if err != nil {
			return Token{}, err
		}
		text := make([]byte, length)
		for index := range text {
			char, err := t.reader.ReadBits(stringCharBits)
			if err != nil {
				return Token{}, t.failRead(err)
			}
			text[index] = byte(char)
		}
		return Token{Kind: KindString, Bytes: text}, nil

	default:
		return Token{}, t.fail(ErrUnknownTokenPrefix, fmt.Sprintf("prefix %03b", prefix))
	}
}

// readVarInt reads up to four (nibble, continuation) groups. The first
// nibble is the least significant.
func (t *tokenizer) readVarInt() (uint16, error) {
	start := t.reader.Consumed()
	var value uint64
	for nibble := range maxNibbles {
		group, err := t.reader.ReadBits(nibbleBits + 1)
		if err != nil {
			return 0, t.failRead(err)
		}
		digit := group >> 1
		value |= digit << (nibbleBits * nibble)

		more := group&1 == 1
		switch {
		case more && nibble == maxNibbles-1:
			t.warn(WarningNonCanonical, start, "continuation bit set on the last nibble")
		case !more && nibble > 0 && digit == 0:
			t.warn(WarningNonCanonical, start,
				fmt.Sprintf("value %d written with %d nibbles", value, nibble+1))
		}
		if !more {
			break
		}
	}
	return uint16(value), nil
}

func (t *tokenizer) readPart() (Token, error) {
	index, err := t.readVarInt()
	if err != nil {
		return Token{}, err
	}
	single, err := t.reader.ReadBit()
	if err != nil {
		return Token{}, t.failRead(err)
	}

	if single {
		value, err := t.readVarInt()
		if err != nil {
			return Token{}, err
		}
		terminator, err := t.reader.ReadBits(partSingleTermBits)
		if err != nil {
			return Token{}, t.failRead(err)
		}
		if terminator != 0 {
			return Token{}, t.fail(ErrMalformedPart,
				fmt.Sprintf("part %d: value terminator %03b, want 000", index, terminator))
		}
		return PartWithValue(index, value), nil
	}

	subtype, err := t.reader.ReadBits(partSubtypeBits)
	if err != nil {
		return Token{}, t.failRead(err)
	}
	switch subtype {
	case partSubtypeNone:
		return PartNoValue(index), nil
	case partSubtypeList:
		values, err := t.readPartList(index)
		if err != nil {
			return Token{}, err
		}
		return PartWithList(index, values...), nil
	default:
		return Token{}, t.fail(ErrMalformedPart, fmt.Sprintf("part %d: subtype %02b", index, subtype))
	}
}

// readPartList reads VarInt-prefixed elements until the 00 marker.
func (t *tokenizer) readPartList(index uint16) ([]uint16, error) {
	values := []uint16{}
	for {
		marker, err := t.reader.PeekBits(shortPrefixBits)
		if err != nil {
			return nil, t.failRead(err)
		}
		if marker == partListTerminator {
			if _, err := t.reader.ReadBits(shortPrefixBits); err != nil {
				return nil, t.failRead(err)
			}
			return values, nil
		}

		prefix, err := t.reader.ReadBits(longPrefixBits)
		if err != nil {
			return nil, t.failRead(err)
		}
		if prefix != partListElementPrefix {
			return nil, t.fail(ErrMalformedPart,
				fmt.Sprintf("part %d: list element %d has prefix %03b", index, len(values), prefix))
		}
		value, err := t.readVarInt()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
}

func (t *tokenizer) warn(kind WarningKind, offset int, detail string) {
	t.warnings = append(t.warnings, Warning{Kind: kind, BitOffset: offset, Detail: detail})
}

func (t *tokenizer) fail(sentinel error, detail string) error {
	return &DecodeError{
		Err:       sentinel,
		BitOffset: t.tokenStart,
		Detail:    detail,
		Tokens:    t.tokens,
	}
}

// failRead converts a bitstream read failure into a DecodeError. Only
// exhaustion is expected; anything else is reported verbatim.
func (t *tokenizer) failRead(err error) error {
	if errors.Is(err, bitstream.ErrOutOfData) {
		return t.fail(ErrOutOfData, fmt.Sprintf("stream ended at bit %d", t.reader.Len()))
	}
	return &DecodeError{Err: err, BitOffset: t.reader.Consumed(), Tokens: t.tokens}
}

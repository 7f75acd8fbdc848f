// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lootforge/lootforge/lib/base85"
	"github.com/lootforge/lootforge/lib/bitstream"
)

// Prefix opens every serial string. It is not part of the Base85
// payload.
const Prefix = "@U"

// typeCharOffset is the position of the type character in the full
// string: Prefix, then the "g" marker, then the type.
const typeCharOffset = len(Prefix) + 1

// Serial is a decoded item serial.
type Serial struct {
	// TypeChar is the item category selector, the fourth character
	// of the string. It is the second Base85 symbol of the payload,
	// so it follows from the token bits rather than being stored
	// separately.
	TypeChar byte

	// Payload is the mirrored bitstream (MSB-first) the tokens were
	// read from.
	Payload []byte

	Tokens []Token

	// Warnings lists soft findings. A serial with warnings decoded
	// correctly but will not re-encode to the identical string.
	Warnings []Warning
}

// Decode parses a full serial string: it strips [Prefix], Base85
// decodes the rest, mirrors every byte and tokenizes the result.
//
// Character errors match [ErrInvalidSymbol] and report their offset
// in text (not in the Base85 payload). Bitstream errors are
// [*DecodeError] values.
func Decode(text string) (*Serial, error) {
	if !strings.HasPrefix(text, Prefix) {
		return nil, fmt.Errorf("serial %q: %w", abbreviate(text), ErrBadPrefix)
	}

	raw, err := base85.Decode(text[len(Prefix):])
	if err != nil {
		var symbolErr *base85.SymbolError
		if errors.As(err, &symbolErr) {
			return nil, &base85.SymbolError{
				Offset: symbolErr.Offset + len(Prefix),
				Symbol: symbolErr.Symbol,
			}
		}
		return nil, fmt.Errorf("serial %q: %w", abbreviate(text), err)
	}

	payload := bitstream.Mirror(raw)
	tokens, warnings, err := Tokenize(payload)
	if err != nil {
		return nil, err
	}

	serial := &Serial{
		Payload:  payload,
		Tokens:   tokens,
		Warnings: warnings,
	}
	if len(text) > typeCharOffset {
		serial.TypeChar = text[typeCharOffset]
	}
	return serial, nil
}

// Encode builds the full serial string for tokens.
func Encode(tokens []Token) (string, error) {
	payload, err := EncodeTokens(tokens)
	if err != nil {
		return "", err
	}
	return Prefix + base85.Encode(bitstream.Mirror(payload)), nil
}

// String re-encodes the serial from its tokens. It returns an empty
// string if the tokens are not encodable, which cannot happen for a
// Serial produced by [Decode].
func (s *Serial) String() string {
	text, err := Encode(s.Tokens)
	if err != nil {
		return ""
	}
	return text
}

// abbreviate shortens text for error messages.
func abbreviate(text string) string {
	const limit = 24
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package base85

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet lists the 85 symbols in digit order: the symbol at index i
// encodes the digit value i.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!#$%&()*+-;<=>?@^_`{/}~"

const (
	groupBytes   = 4
	groupSymbols = 5
	maxDigit     = 84
)

var (
	// ErrInvalidSymbol is matched by every [*SymbolError].
	ErrInvalidSymbol = errors.New("invalid base85 symbol")

	// ErrGroupOverflow reports a five-symbol group whose value does not
	// fit in 32 bits. No output of [Encode] produces one.
	ErrGroupOverflow = errors.New("base85 group exceeds 32 bits")

	// ErrTruncatedGroup reports a single symbol after the last full
	// group. It carries no whole byte, so the text was cut short or
	// has a stray character. No output of [Encode] produces one.
	ErrTruncatedGroup = errors.New("base85 text ends in a one-symbol group")
)

// SymbolError reports a character outside [Alphabet].
type SymbolError struct {
	// Offset is the byte offset of the character in the input string.
	Offset int
	// Symbol is the offending character.
	Symbol rune
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("invalid base85 symbol %q at offset %d", e.Symbol, e.Offset)
}

// Is makes errors.Is(err, ErrInvalidSymbol) true for every SymbolError.
func (e *SymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// digitValue maps a symbol byte to its digit value, or -1.
var digitValue = func() (table [256]int8) {
	for index := range table {
		table[index] = -1
	}
	for index := range len(Alphabet) {
		table[Alphabet[index]] = int8(index)
	}
	return table
}()

// EncodedLen returns the number of symbols Encode produces for n bytes.
func EncodedLen(n int) int {
	full, partial := n/groupBytes, n%groupBytes
	length := full * groupSymbols
	if partial > 0 {
		length += partial + 1
	}
	return length
}

// DecodedLen returns the number of bytes Decode produces for n symbols.
// A trailing one-symbol group counts for nothing; Decode rejects it.
func DecodedLen(n int) int {
	full, partial := n/groupSymbols, n%groupSymbols
	length := full * groupBytes
	if partial > 1 {
		length += partial - 1
	}
	return length
}

// Encode returns the base85 text for data.
func Encode(data []byte) string {
	var builder strings.Builder
	builder.Grow(EncodedLen(len(data)))

	var digits [groupSymbols]byte
	for len(data) > 0 {
		take := min(groupBytes, len(data))

		var group uint32
		for index := range groupBytes {
			group <<= 8
			if index < take {
				group |= uint32(data[index])
			}
		}
		for index := groupSymbols - 1; index >= 0; index-- {
			digits[index] = Alphabet[group%85]
			group /= 85
		}

		if take == groupBytes {
			builder.Write(digits[:])
		} else {
			builder.Write(digits[:take+1])
		}
		data = data[take:]
	}
	return builder.String()
}

// Decode returns the bytes encoded by text. It is the inverse of
// [Encode]. Text ending in a single symbol after the last full group
// fails with [ErrTruncatedGroup].
func Decode(text string) ([]byte, error) {
	output := make([]byte, 0, DecodedLen(len(text)))

	for start := 0; start < len(text); start += groupSymbols {
		end := min(start+groupSymbols, len(text))

		var group uint64
		for offset := start; offset < end; offset++ {
			digit := digitValue[text[offset]]
			if digit < 0 {
				return nil, &SymbolError{Offset: offset, Symbol: symbolAt(text, offset)}
			}
			group = group*85 + uint64(digit)
		}
		count := end - start
		if count == 1 {
			return nil, fmt.Errorf("symbol at offset %d: %w", start, ErrTruncatedGroup)
		}
		for range groupSymbols - count {
			group = group*85 + maxDigit
		}
		emit := groupBytes
		if count < groupSymbols {
			emit = count - 1
		}
		if group > 0xFFFFFFFF {
			return nil, fmt.Errorf("group at offset %d: %w", start, ErrGroupOverflow)
		}
		for index := range emit {
			output = append(output, byte(group>>(24-8*index)))
		}
	}
	return output, nil
}

// symbolAt returns the full rune starting at offset so that a
// multi-byte character is reported intact.
func symbolAt(text string, offset int) rune {
	for _, r := range text[offset:] {
		return r
	}
	return rune(text[offset])
}

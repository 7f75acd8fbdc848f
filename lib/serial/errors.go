// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"errors"
	"fmt"

	"github.com/lootforge/lootforge/lib/base85"
	"github.com/lootforge/lootforge/lib/bitstream"
)

var (
	// ErrBadMagic means the payload does not open with the 7-bit
	// magic value. The input is not a serial at all.
	ErrBadMagic = errors.New("bad magic header")

	// ErrOutOfData means the bitstream ended inside a token: the
	// serial is truncated or corrupt.
	ErrOutOfData = bitstream.ErrOutOfData

	// ErrMalformedPart means a Part token used a subtype or terminator
	// outside the grammar.
	ErrMalformedPart = errors.New("malformed part")

	// ErrUnknownTokenPrefix means a token prefix outside the grammar.
	// Every 2- and 3-bit prefix is currently assigned, so seeing this
	// points at corruption upstream of the tokenizer.
	ErrUnknownTokenPrefix = errors.New("unknown token prefix")

	// ErrInvalidSymbol is base85.ErrInvalidSymbol, re-exported so
	// callers of [Decode] can match it without importing lib/base85.
	ErrInvalidSymbol = base85.ErrInvalidSymbol

	// ErrBadPrefix means the text does not start with [Prefix].
	ErrBadPrefix = errors.New("missing serial prefix")

	// ErrInvalidToken is returned by the encoder for a token whose
	// fields cannot be represented (VarBit wider than 31 bits, value
	// wider than its length, non-ASCII string bytes, ...).
	ErrInvalidToken = errors.New("invalid token")
)

// DecodeError describes a failed tokenization.
type DecodeError struct {
	// Err is one of the package sentinels.
	Err error

	// BitOffset is the absolute offset in the mirrored payload where
	// the failing token (or read) started.
	BitOffset int

	// Detail is a human-readable explanation, possibly empty.
	Detail string

	// Tokens holds the tokens decoded before the failure. They are
	// not a trustworthy decode and exist only for diagnostics.
	Tokens []Token
}

func (e *DecodeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("serial: %v at bit %d after %d tokens: %s", e.Err, e.BitOffset, len(e.Tokens), e.Detail)
	}
	return fmt.Sprintf("serial: %v at bit %d after %d tokens", e.Err, e.BitOffset, len(e.Tokens))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// WarningKind classifies a [Warning].
type WarningKind uint8

const (
	// WarningTrailingBits means non-zero bits followed the end of the
	// token stream. Padding comes from base85 group alignment and
	// carries no meaning, but re-encoding will not reproduce it.
	WarningTrailingBits WarningKind = iota + 1

	// WarningNonCanonical means a VarInt used more nibbles than its
	// value needs. Re-encoding writes the minimal form.
	WarningNonCanonical
)

func (k WarningKind) String() string {
	switch k {
	case WarningTrailingBits:
		return "trailing_bits"
	case WarningNonCanonical:
		return "non_canonical_varint"
	default:
		return fmt.Sprintf("warning(%d)", uint8(k))
	}
}

// Warning is a soft decode finding. The decode still succeeds, but an
// exact re-encode of the original text is not guaranteed.
type Warning struct {
	Kind      WarningKind
	BitOffset int
	Detail    string
}

func (w Warning) String() string {
	return fmt.Sprintf("%v at bit %d: %s", w.Kind, w.BitOffset, w.Detail)
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package base85 implements the 85-symbol text encoding used by item
// serial strings.
//
// The encoding is positional like Ascii85 (four bytes form one
// big-endian 32-bit group written as five base-85 digits, most
// significant first) but uses its own alphabet, given by [Alphabet],
// and has no "z" shorthand and no delimiters. A trailing group of k
// bytes (1 ≤ k ≤ 3) is zero-padded and written as k+1 digits; on
// decode the missing digits are filled with the highest symbol so the
// truncated bytes come back unchanged.
//
// Decoding rejects any character outside the alphabet with a
// [*SymbolError] matching [ErrInvalidSymbol], reporting the character
// offset. A lone symbol after the last full group encodes no byte and
// fails with [ErrTruncatedGroup].
package base85

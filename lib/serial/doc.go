// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package serial decodes and re-encodes item serial strings.
//
// A serial string looks like "@Ugr$ZCm/&tH!t{KgK/Shxu>k": the fixed
// prefix "@U" followed by base85 text (see lib/base85). The decoded
// bytes are bit-mirrored (lib/bitstream.Mirror) and then read as an
// MSB-first bitstream that opens with the 7-bit magic value 0b0010000
// and continues with prefix-coded tokens:
//
//	00   Separator       section boundary; also the stream terminator
//	01   SoftSeparator   sub-section boundary
//	100  VarInt          1-4 groups of (4-bit nibble, 1-bit continue), low nibble first
//	101  Part            VarInt index, then a flag-selected value
//	110  VarBit          5-bit length L, then L value bits
//	111  String          VarInt length, then 7-bit ASCII bytes
//
// The character after "@U" is always 'g' and the next one (the type
// character) is determined by the leading bits of the payload; both are
// part of the base85 text, so [Encode] reproduces them without being
// told.
//
// The token grammar is a closed set represented by [Token] with a
// [Kind] discriminator. [Tokenize] and [EncodeTokens] switch
// exhaustively over Kind and are exact inverses for canonical token
// sequences. The tokenizer imposes no structure on the flat sequence:
// which VarInt is a level or which part fills which slot is a lookup
// table concern (see lib/partsdb).
//
// Decode failures are returned as [*DecodeError], which carries the bit
// offset, the tokens decoded before the failure, and a sentinel
// ([ErrBadMagic], [ErrOutOfData], [ErrMalformedPart],
// [ErrUnknownTokenPrefix], [ErrInvalidSymbol]) for errors.Is. Partial
// tokens are for diagnostics only.
package serial

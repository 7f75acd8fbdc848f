// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package bitstream provides forward-only bit-level reading and writing
// over byte buffers, plus the per-byte bit mirror applied to item
// serial payloads.
//
// Bits are addressed MSB-first within each byte: bit offset 0 is the
// high bit of byte 0, offset 7 its low bit, offset 8 the high bit of
// byte 1. Both [Reader] and [Writer] track an absolute bit offset and
// never align implicitly. The only alignment operation is
// [Writer.PadToByte], which callers invoke once at end of stream.
//
// Key exports:
//
//   - [Reader] -- ReadBits/PeekBits with [ErrOutOfData] on exhaustion
//   - [Writer] -- WriteBits into a growable buffer, PadToByte
//   - [Mirror] -- reverses the bit order inside every byte; self-inverse
//
// This package has no dependencies on other lootforge packages.
package bitstream

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope reads and writes the encrypted save file container.
//
// A save file is a zlib-compressed YAML document, PKCS7-padded to the
// AES block size and encrypted with AES-256 in ECB mode. The key is a
// fixed base key with its first eight bytes XORed with the player's
// numeric identifier. Two pipelines compose these steps:
//
//	Decrypt: ciphertext -> AES-256-ECB -> PKCS7 unpad -> zlib inflate -> body
//	Encrypt: body -> zlib deflate -> PKCS7 pad -> AES-256-ECB -> ciphertext
//
// ECB encrypts identical 16-byte plaintext blocks to identical
// ciphertext blocks. That is the format the game reads, so this
// package reproduces it exactly.
//
// A wrong player identifier surfaces as [ErrBadPadding] because the
// decrypted tail is noise. A file whose padding checks out but whose
// body does not inflate fails with [ErrDecompression] and is reported
// as corrupt or not a save file. [IsWrongKey] and [IsCorrupt] tell the
// two apart.
//
// The body is opaque here. Parsing and editing it is lib/savedoc's
// job.
package envelope

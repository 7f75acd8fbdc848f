// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint computes domain-separated BLAKE3 digests of
// serials and save bodies.
//
// Digests identify content, not text: a serial payload is hashed after
// decoding, so two serial strings that decode to the same bits share a
// fingerprint. The batch command uses payload digests to report
// duplicates, and the save commands use body digests to detect whether
// an edit changed anything before re-encrypting.
//
// Each kind of input has its own 32-byte BLAKE3 key, so identical bytes
// hashed in different roles never collide.
package fingerprint

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package batch decodes many serials in parallel.
//
// [Decode] fans the input out to a fixed number of workers and returns
// one [Result] per input, in input order. A serial that fails to
// decode produces a Result with Error set; it never stops the batch.
// Only context cancellation does.
//
// Results can be written to and read back from a file as a CBOR
// sequence (lib/codec), compressed with zstd or LZ4 when the file name
// ends in ".zst" or ".lz4".
package batch

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the shared CBOR configuration for export
// files.
//
// Lootforge writes two structured formats: JSON for terminal output
// (the --json flag) and CBOR for files other tools consume, such as
// decoded serials and batch results. Every package encodes CBOR
// through this package so the output is identical byte for byte
// regardless of which command produced it. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2).
//
// For buffers:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For streams, a batch file is a CBOR sequence of records:
//
//	encoder := codec.NewEncoder(file)
//	records, err := codec.ReadSequence[batch.Result](file)
//
// # Struct Tag Rules
//
// Types use `json` tags only. fxamacker/cbor v2 reads `json` tags
// when `cbor` tags are absent, so one tag controls field naming and
// omitempty for both formats.
package codec

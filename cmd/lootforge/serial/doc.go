// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package serial implements the "lootforge serial" command group:
// decoding serial strings to tokens (text, JSON, CBOR or CBOR
// diagnostic notation), encoding token documents back to serials, and
// bulk decoding of serial lists into CBOR result files.
package serial

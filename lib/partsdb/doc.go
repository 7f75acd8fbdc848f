// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package partsdb loads the part name table used to label decoded
// serials.
//
// Part tokens in a serial carry only an index. Which part an index
// names depends on the item category, so the table is keyed by
// (category, index). The table is maintained outside this repository
// and comes in three layouts, all accepted by [Load]:
//
//   - JSON, with comments and trailing commas allowed:
//     {"parts": [{"name": "...", "category": 3, "index": 7}, ...]}
//   - TSV with a header row: category, index, name
//   - a directory of per-category TSV files named "<category>.tsv" or
//     "<label>-<category>.tsv", each with a header row and index, name
//     columns
//
// The table is read-only once loaded and safe for concurrent use.
package partsdb

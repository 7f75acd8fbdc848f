// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package save implements the "lootforge save" command group:
// decrypting and re-encrypting save files, listing the item serials a
// save holds, summarizing it, and applying edits in place.
package save

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package savedoc reads and edits the YAML document inside a save
// file.
//
// The document is kept as a yaml.v3 node tree, so keys this package
// knows nothing about survive an edit unchanged and in their original
// order. Values are addressed by dotted paths with bracketed sequence
// indices:
//
//	state.char_name
//	state.experience[0].points
//	state.inventory.items.backpack.slot_3.serial
//
// [ChangeSet] batches edits by path and applies them in one pass.
// [StateFlags] is the inventory item bitmask stored under
// "state_flags".
package savedoc

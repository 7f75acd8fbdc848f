// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package reference holds static game data used to label items for
// display: rarity tiers, manufacturers, weapon and gear types, and the
// known legendaries. None of it affects decoding.
//
// [Describe] classifies an internal item or part name such as
// "JAK_PS.comp_05_legendary_SeventhSense" using these tables.
package reference

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package parts implements the "lootforge parts" command group for
// browsing the parts database used to name part tokens.
package parts

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Lootforge is the command-line tool for item serials and save files.
// It provides subcommands for decoding and encoding serials (serial),
// decrypting, inspecting and editing saves (save), and browsing the
// parts database (parts).
package main

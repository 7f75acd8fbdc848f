// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for lootforge.
//
// Configuration comes from a single file named by either the
// LOOTFORGE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. [Resolve] picks between the two and falls back to
// [Default] when neither is given, so every command works without a
// config file.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- player id, parts database, batch, output, save settings
//   - [Default] -- returns a Config with defaults
//   - [Load], [LoadFile] and [Resolve] -- the entry points for loading
//
// This package depends on no other lootforge packages.
package config

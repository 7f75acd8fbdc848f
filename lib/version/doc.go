// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which build of lootforge is running.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are set with
// -ldflags -X at release time and keep their development defaults
// otherwise. "lootforge version" prints [Full], or [Current] with
// --json.
package version

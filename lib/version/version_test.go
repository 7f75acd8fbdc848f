// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func setBuild(t *testing.T, version, commit, dirty, buildTime string) {
	t.Helper()
	saved := [4]string{Version, GitCommit, GitDirty, BuildTime}
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = saved[0], saved[1], saved[2], saved[3]
	})
	Version, GitCommit, GitDirty, BuildTime = version, commit, dirty, buildTime
}

func TestInfo(t *testing.T) {
	setBuild(t, "1.2.3", "abc1234", "false", "2026-01-02T03:04:05Z")
	if got, want := Info(), "1.2.3 (abc1234, 2026-01-02T03:04:05Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "true"
	if got, want := Info(), "1.2.3 (abc1234-dirty, 2026-01-02T03:04:05Z)"; got != want {
		t.Errorf("Info() dirty = %q, want %q", got, want)
	}
}

func TestFull(t *testing.T) {
	setBuild(t, "1.2.3", "abc1234", "false", "unknown")
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q does not start with Info()", full)
	}
	if !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() = %q missing Go version", full)
	}
}

func TestCurrent(t *testing.T) {
	setBuild(t, "1.2.3", "abc1234", "true", "now")
	build := Current()
	if build.Version != "1.2.3" || build.Commit != "abc1234" || !build.Dirty || build.BuildTime != "now" {
		t.Errorf("Current() = %+v", build)
	}
	if build.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", build.Platform)
	}
}

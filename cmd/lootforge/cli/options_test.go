// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lootforge/lootforge/lib/envelope"
	"github.com/lootforge/lootforge/lib/partsdb"
)

func TestPartsOptionsNamer(t *testing.T) {
	database := partsdb.New([]partsdb.Part{
		{Name: "JAK_PS.part_barrel_01", Category: 3, Index: 1},
	}, nil)

	options := PartsOptions{Category: -1}
	if _, ok := options.CategoryID(); ok {
		t.Error("CategoryID() reported a category for -1")
	}
	if options.Namer(database) != nil {
		t.Error("Namer returned a lookup without a category")
	}

	options.Category = 3
	if id, ok := options.CategoryID(); !ok || id != 3 {
		t.Errorf("CategoryID() = %d, %v; want 3, true", id, ok)
	}
	namer := options.Namer(database)
	if namer == nil {
		t.Fatal("Namer returned nil with a category and a database")
	}
	if name, ok := namer(1); !ok || name != "JAK_PS.part_barrel_01" {
		t.Errorf("namer(1) = %q, %v", name, ok)
	}
	if options.Namer(nil) != nil {
		t.Error("Namer returned a lookup without a database")
	}
}

func TestWrongKeyHint(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{"bad padding", fmt.Errorf("opening 1.sav: %w", envelope.ErrBadPadding), "player id"},
		{"decompression", fmt.Errorf("opening 1.sav: %w", envelope.ErrDecompression), "corrupt or not a save file"},
		{"length", envelope.ErrCiphertextLength, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			hinted := WrongKeyHint(test.err)
			if !errors.Is(hinted, test.err) {
				t.Errorf("WrongKeyHint dropped the wrapped error: %v", hinted)
			}
			if test.wantHint == "" {
				if hinted != test.err {
					t.Errorf("WrongKeyHint(%v) = %v, want it unchanged", test.err, hinted)
				}
				return
			}
			if !strings.Contains(hinted.Error(), test.wantHint) {
				t.Errorf("WrongKeyHint(%v) = %q, want %q in it", test.err, hinted, test.wantHint)
			}
		})
	}
	if hinted := WrongKeyHint(envelope.ErrDecompression); strings.Contains(hinted.Error(), "player id") {
		t.Errorf("corrupt body hint blames the player id: %q", hinted)
	}
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package parts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lootforge/lootforge/lib/partsdb"
)

func testDatabase() *partsdb.Database {
	return partsdb.New([]partsdb.Part{
		{Name: "JAK_PS.part_barrel_01", Category: 3, Index: 1},
		{Name: "JAK_PS.part_grip_01", Category: 3, Index: 5},
		{Name: "JAK_PS.part_barrel_02", Category: 3, Index: 2},
		{Name: "JAK_PS.comp_05_legendary_SeventhSense", Category: 3, Index: 9},
		{Name: "VLA_AR.part_barrel_01", Category: 4, Index: 1},
	}, map[uint64]string{3: "Jakobs Pistol"})
}

func TestListCategories(t *testing.T) {
	listings := listCategories(testDatabase(), []uint64{3, 99})
	if len(listings) != 2 {
		t.Fatalf("got %d listings, want 2", len(listings))
	}

	jakobs := listings[0]
	if jakobs.Label != "Jakobs Pistol" || jakobs.Description != "Jakobs Pistol" {
		t.Errorf("label %q, description %q", jakobs.Label, jakobs.Description)
	}
	var types []string
	for _, group := range jakobs.Groups {
		types = append(types, group.Type)
	}
	if got := strings.Join(types, ","); got != "barrel,grip,other" {
		t.Errorf("group types = %s, want barrel,grip,other", got)
	}
	if barrels := jakobs.Groups[0].Parts; len(barrels) != 2 || barrels[0].Index != 1 || barrels[1].Index != 2 {
		t.Errorf("barrels = %+v", barrels)
	}

	if empty := listings[1]; len(empty.Groups) != 0 || empty.Description != "" {
		t.Errorf("unknown category listing = %+v", empty)
	}

	var output bytes.Buffer
	if err := writeListings(&output, listings); err != nil {
		t.Fatalf("writeListings: %v", err)
	}
	for _, want := range []string{
		"Category 3: Jakobs Pistol\n",
		"  barrel:\n    {1} JAK_PS.part_barrel_01\n    {2} JAK_PS.part_barrel_02\n",
		"Category 99\n  (no parts)\n",
	} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("output missing %q:\n%s", want, output.String())
		}
	}
}

func TestWriteCategories(t *testing.T) {
	var output bytes.Buffer
	if err := writeCategories(&output, testDatabase().Categories()); err != nil {
		t.Fatalf("writeCategories: %v", err)
	}
	want := "     3      4 parts  Jakobs Pistol\n" +
		"     4      1 parts\n" +
		"\nCategories:  2\n"
	if output.String() != want {
		t.Errorf("output = %q, want %q", output.String(), want)
	}
}

func TestSearch(t *testing.T) {
	database := testDatabase()
	matches := database.Search("BARREL_01")
	if len(matches) != 2 {
		t.Fatalf("Search matched %d parts, want 2", len(matches))
	}
	filtered := inCategory(matches, 4)
	if len(filtered) != 1 || filtered[0].Name != "VLA_AR.part_barrel_01" {
		t.Errorf("inCategory = %+v", filtered)
	}

	var output bytes.Buffer
	if err := writeMatches(&output, filtered); err != nil {
		t.Fatalf("writeMatches: %v", err)
	}
	if want := "     4  {1} VLA_AR.part_barrel_01\n\nMatches:     1\n"; output.String() != want {
		t.Errorf("output = %q, want %q", output.String(), want)
	}
}

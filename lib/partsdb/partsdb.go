// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package partsdb

import (
	"cmp"
	"slices"
	"strings"
)

// Part is one row of the table.
type Part struct {
	Name     string `json:"name"`
	Category uint64 `json:"category"`
	Index    uint16 `json:"index"`
}

// Type returns the part type embedded in the name: the word after
// ".part_", such as "barrel" for "JAK_PS.part_barrel_01". Names
// without a part marker are "other".
func (p Part) Type() string {
	_, after, found := strings.Cut(p.Name, ".part_")
	if !found {
		return "other"
	}
	partType, _, _ := strings.Cut(after, "_")
	if partType == "" {
		return "other"
	}
	return partType
}

// Category summarizes one category of the table.
type Category struct {
	ID uint64 `json:"id"`

	// Label is the descriptive name, when the source had one (a
	// directory file name prefix or a JSON category entry).
	Label string `json:"label,omitempty"`

	Parts int `json:"parts"`
}

type key struct {
	category uint64
	index    uint16
}

// Database is a loaded part table.
type Database struct {
	parts  []Part
	byKey  map[key]int
	labels map[uint64]string
}

// New builds a Database from parts. Parts are sorted by (category,
// index); when two rows share a key the later one wins.
func New(parts []Part, labels map[uint64]string) *Database {
	sorted := slices.Clone(parts)
	slices.SortStableFunc(sorted, func(a, b Part) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Index, b.Index))
	})

	deduplicated := sorted[:0]
	for _, part := range sorted {
		if n := len(deduplicated); n > 0 &&
			deduplicated[n-1].Category == part.Category && deduplicated[n-1].Index == part.Index {
			deduplicated[n-1] = part
			continue
		}
		deduplicated = append(deduplicated, part)
	}

	database := &Database{
		parts:  deduplicated,
		byKey:  make(map[key]int, len(deduplicated)),
		labels: make(map[uint64]string, len(labels)),
	}
	for position, part := range deduplicated {
		database.byKey[key{part.Category, part.Index}] = position
	}
	for id, label := range labels {
		database.labels[id] = label
	}
	return database
}

// Len returns the number of parts.
func (d *Database) Len() int {
	return len(d.parts)
}

// Parts returns every part in (category, index) order. The slice must
// not be modified.
func (d *Database) Parts() []Part {
	return d.parts
}

// Name returns the name of the part at (category, index).
func (d *Database) Name(category uint64, index uint16) (string, bool) {
	position, ok := d.byKey[key{category, index}]
	if !ok {
		return "", false
	}
	return d.parts[position].Name, true
}

// Namer returns a lookup for one category, in the shape the serial
// formatter expects.
func (d *Database) Namer(category uint64) func(index uint16) (string, bool) {
	return func(index uint16) (string, bool) {
		return d.Name(category, index)
	}
}

// Categories lists every category with its part count, ordered by ID.
func (d *Database) Categories() []Category {
	var categories []Category
	for _, part := range d.parts {
		if n := len(categories); n > 0 && categories[n-1].ID == part.Category {
			categories[n-1].Parts++
			continue
		}
		categories = append(categories, Category{
			ID:    part.Category,
			Label: d.labels[part.Category],
			Parts: 1,
		})
	}
	return categories
}

// InCategory returns the parts of one category in index order.
func (d *Database) InCategory(category uint64) []Part {
	start, _ := slices.BinarySearchFunc(d.parts, category, func(part Part, target uint64) int {
		return cmp.Compare(part.Category, target)
	})
	end := start
	for end < len(d.parts) && d.parts[end].Category == category {
		end++
	}
	return d.parts[start:end]
}

// Search returns the parts whose name contains query, ignoring case.
func (d *Database) Search(query string) []Part {
	query = strings.ToLower(query)
	var matches []Part
	for _, part := range d.parts {
		if strings.Contains(strings.ToLower(part.Name), query) {
			matches = append(matches, part)
		}
	}
	return matches
}

// FindCategory returns the IDs of the categories whose label contains
// query, ignoring case.
func (d *Database) FindCategory(query string) []uint64 {
	query = strings.ToLower(query)
	var matches []uint64
	for _, category := range d.Categories() {
		if category.Label != "" && strings.Contains(strings.ToLower(category.Label), query) {
			matches = append(matches, category.ID)
		}
	}
	return matches
}

// TypeGroup is the parts of one type.
type TypeGroup struct {
	Type  string `json:"type"`
	Parts []Part `json:"parts"`
}

// GroupByType groups parts by [Part.Type], ordered by type name, with
// each group keeping the input order.
func GroupByType(parts []Part) []TypeGroup {
	byType := make(map[string][]Part)
	for _, part := range parts {
		byType[part.Type()] = append(byType[part.Type()], part)
	}
	groups := make([]TypeGroup, 0, len(byType))
	for partType, members := range byType {
		groups = append(groups, TypeGroup{Type: partType, Parts: members})
	}
	slices.SortFunc(groups, func(a, b TypeGroup) int {
		return cmp.Compare(a.Type, b.Type)
	})
	return groups
}

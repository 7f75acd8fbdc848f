// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package savedoc

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Well-known paths.
const (
	PathCharacterName    = "state.char_name"
	PathCash             = "state.currencies.cash"
	PathEridium          = "state.currencies.eridium"
	PathCharacterXP      = "state.experience[0].points"
	PathSpecializationXP = "state.experience[1].points"
	pathBackpackSlot     = "state.inventory.items.backpack.slot_%d"
	pathBankSlot         = "domains.local.shared.inventory.items.bank.slot_%d"
	pathEquippedSlot     = "state.inventory.equipped_inventory.equipped.slot_%d"
)

// ChangeSet is a batch of pending edits keyed by path. Setting a path
// twice keeps the later value.
type ChangeSet struct {
	changes map[string]any
}

// NewChangeSet returns an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{changes: make(map[string]any)}
}

// Add records value for path.
func (c *ChangeSet) Add(path string, value any) {
	c.changes[path] = value
}

// AddParsed records text for path after [ParseValue].
func (c *ChangeSet) AddParsed(path, text string) {
	c.Add(path, ParseValue(text))
}

// AddRaw records a YAML fragment for path, for values with structure.
func (c *ChangeSet) AddRaw(path, fragment string) error {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(fragment), &node); err != nil {
		return fmt.Errorf("parsing value for %s: %w", path, err)
	}
	c.Add(path, &node)
	return nil
}

// Has reports whether path has a pending change.
func (c *ChangeSet) Has(path string) bool {
	_, ok := c.changes[path]
	return ok
}

// Get returns the pending value for path.
func (c *ChangeSet) Get(path string) (any, bool) {
	value, ok := c.changes[path]
	return value, ok
}

// Remove drops the pending change for path.
func (c *ChangeSet) Remove(path string) {
	delete(c.changes, path)
}

// Len returns the number of pending changes.
func (c *ChangeSet) Len() int {
	return len(c.changes)
}

// Paths returns the changed paths in application order.
func (c *ChangeSet) Paths() []string {
	return slices.Sorted(maps.Keys(c.changes))
}

// Apply writes every change into document, in sorted path order so a
// parent mapping is created before its children. It stops at the first
// failure; changes applied before it stay applied.
func (c *ChangeSet) Apply(document *Document) error {
	for _, path := range c.Paths() {
		if err := document.Set(path, c.changes[path]); err != nil {
			return fmt.Errorf("applying change: %w", err)
		}
	}
	return nil
}

func (c *ChangeSet) SetCharacterName(name string) { c.Add(PathCharacterName, name) }
func (c *ChangeSet) SetCash(amount uint64)        { c.Add(PathCash, amount) }
func (c *ChangeSet) SetEridium(amount uint64)     { c.Add(PathEridium, amount) }
func (c *ChangeSet) SetCharacterXP(points uint64) { c.Add(PathCharacterXP, points) }
func (c *ChangeSet) SetSpecializationXP(points uint64) {
	c.Add(PathSpecializationXP, points)
}

// AddBackpackItem places serial in a backpack slot.
func (c *ChangeSet) AddBackpackItem(slot int, serial string, flags StateFlags) {
	base := BackpackSlot(slot)
	c.Add(base+".serial", serial)
	c.Add(base+".flags", 0)
	c.Add(base+".state_flags", uint32(flags))
}

// SetBackpackFlags replaces the state flags of a backpack slot.
func (c *ChangeSet) SetBackpackFlags(slot int, flags StateFlags) {
	c.Add(BackpackSlot(slot)+".state_flags", uint32(flags))
}

// SetBackpackLabel sets a backpack slot to the standard backpack flags
// with label applied (zero for no label).
func (c *ChangeSet) SetBackpackLabel(slot int, label StateFlags) {
	c.SetBackpackFlags(slot, BackpackFlags().WithLabel(label))
}

// AddBankItem places serial in a bank slot. The bank lives in the
// profile save, not character saves.
func (c *ChangeSet) AddBankItem(slot int, serial string, flags StateFlags) {
	base := fmt.Sprintf(pathBankSlot, slot)
	c.Add(base+".serial", serial)
	c.Add(base+".state_flags", uint32(flags))
}

// SetBankFlags replaces the state flags of a bank slot.
func (c *ChangeSet) SetBankFlags(slot int, flags StateFlags) {
	c.Add(fmt.Sprintf(pathBankSlot, slot)+".state_flags", uint32(flags))
}

// equippedItem is one element of an equipped slot.
type equippedItem struct {
	Serial     string `yaml:"serial"`
	Flags      int    `yaml:"flags"`
	StateFlags uint32 `yaml:"state_flags"`
}

// EquipItem puts serial in an equipped slot (0-3 weapons, 4 shield,
// 5 grenade, 6 and up gear). The item should also be in the backpack.
func (c *ChangeSet) EquipItem(slot int, serial string) {
	c.Add(fmt.Sprintf(pathEquippedSlot, slot), []equippedItem{
		{Serial: serial, Flags: 1, StateFlags: uint32(EquippedFlags())},
	})
}

// UnequipSlot empties an equipped slot.
func (c *ChangeSet) UnequipSlot(slot int) {
	c.Add(fmt.Sprintf(pathEquippedSlot, slot), []any{})
}

// ParseValue converts command-line text to the value it denotes:
// integers, floats and booleans become numbers and bools, everything
// else stays a string.
func ParseValue(text string) any {
	if value, err := strconv.ParseInt(text, 10, 64); err == nil {
		return value
	}
	if value, err := strconv.ParseUint(text, 10, 64); err == nil {
		return value
	}
	if value, err := strconv.ParseFloat(text, 64); err == nil {
		return value
	}
	switch text {
	case "true":
		return true
	case "false":
		return false
	}
	return text
}

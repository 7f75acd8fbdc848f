// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package savedoc

import (
	"fmt"
	"strconv"
	"strings"
)

// StateFlags is the "state_flags" bitmask of an inventory item.
type StateFlags uint32

// Bit values as the game writes them.
const (
	FlagValid      StateFlags = 1
	FlagFavorite   StateFlags = 2
	FlagJunk       StateFlags = 4
	FlagLabel1     StateFlags = 16
	FlagLabel2     StateFlags = 32
	FlagLabel3     StateFlags = 64
	FlagLabel4     StateFlags = 128
	FlagInBackpack StateFlags = 512
)

// labelFlags are mutually exclusive: an item carries at most one.
const labelFlags = FlagFavorite | FlagJunk | FlagLabel1 | FlagLabel2 | FlagLabel3 | FlagLabel4

// BackpackFlags is the value for an item in the backpack.
func BackpackFlags() StateFlags { return FlagValid | FlagInBackpack }

// EquippedFlags is the value for an equipped item.
func EquippedFlags() StateFlags { return FlagValid }

// BankFlags is the value for an item in the bank.
func BankFlags() StateFlags { return FlagValid }

// WithLabel returns f carrying only label among the label bits. label
// must be one of FlagFavorite, FlagJunk or FlagLabel1-4; zero clears
// every label.
func (f StateFlags) WithLabel(label StateFlags) StateFlags {
	return f&^labelFlags | label&labelFlags
}

// SetLabel sets label (clearing the others) or clears just that label.
func (f *StateFlags) SetLabel(label StateFlags, on bool) {
	if on {
		*f = f.WithLabel(label)
		return
	}
	*f &^= label & labelFlags
}

// Label returns the label bit that is set, or zero.
func (f StateFlags) Label() StateFlags {
	return f & labelFlags
}

func (f StateFlags) Has(flag StateFlags) bool { return f&flag != 0 }

func (f StateFlags) IsFavorite() bool   { return f.Has(FlagFavorite) }
func (f StateFlags) IsJunk() bool       { return f.Has(FlagJunk) }
func (f StateFlags) IsInBackpack() bool { return f.Has(FlagInBackpack) }
func (f StateFlags) IsEquipped() bool   { return !f.IsInBackpack() }

// ToEquipped clears the backpack bit and keeps everything else.
func (f StateFlags) ToEquipped() StateFlags { return f &^ FlagInBackpack }

// ToBackpack sets the backpack bit and keeps everything else.
func (f StateFlags) ToBackpack() StateFlags { return f | FlagInBackpack }

var labelNames = []struct {
	name string
	flag StateFlags
}{
	{"favorite", FlagFavorite},
	{"junk", FlagJunk},
	{"label1", FlagLabel1},
	{"label2", FlagLabel2},
	{"label3", FlagLabel3},
	{"label4", FlagLabel4},
}

// ParseLabel parses a label name: favorite, junk, label1-label4, or
// none (zero).
func ParseLabel(name string) (StateFlags, error) {
	name = strings.ToLower(name)
	if name == "none" {
		return 0, nil
	}
	for _, label := range labelNames {
		if label.name == name {
			return label.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown label %q (want favorite, junk, label1-label4 or none)", name)
}

// String lists the set flags, for example "valid|favorite|in_backpack".
// Unknown bits are shown in hex.
func (f StateFlags) String() string {
	var names []string
	remaining := f
	add := func(flag StateFlags, name string) {
		if f.Has(flag) {
			names = append(names, name)
			remaining &^= flag
		}
	}
	add(FlagValid, "valid")
	for _, label := range labelNames {
		add(label.flag, label.name)
	}
	add(FlagInBackpack, "in_backpack")
	if remaining != 0 {
		names = append(names, fmt.Sprintf("%#x", uint32(remaining)))
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// MarshalText encodes f in the form of [StateFlags.String].
func (f StateFlags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses the output of [StateFlags.String].
func (f *StateFlags) UnmarshalText(text []byte) error {
	var parsed StateFlags
	if string(text) != "none" {
		for name := range strings.SplitSeq(string(text), "|") {
			flag, err := parseFlagName(name)
			if err != nil {
				return err
			}
			parsed |= flag
		}
	}
	*f = parsed
	return nil
}

func parseFlagName(name string) (StateFlags, error) {
	switch name {
	case "valid":
		return FlagValid, nil
	case "in_backpack":
		return FlagInBackpack, nil
	}
	for _, label := range labelNames {
		if label.name == name {
			return label.flag, nil
		}
	}
	if strings.HasPrefix(name, "0x") {
		value, err := strconv.ParseUint(name[2:], 16, 32)
		if err == nil {
			return StateFlags(value), nil
		}
	}
	return 0, fmt.Errorf("unknown state flag %q", name)
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package savedoc

// Summary is the headline state of a character save. Fields absent
// from the document are left zero.
type Summary struct {
	CharacterName    string `json:"char_name,omitempty"`
	Class            string `json:"class,omitempty"`
	Difficulty       string `json:"difficulty,omitempty"`
	Cash             uint64 `json:"cash"`
	Eridium          uint64 `json:"eridium"`
	CharacterLevel   uint64 `json:"character_level,omitempty"`
	CharacterXP      uint64 `json:"character_xp"`
	SpecializationXP uint64 `json:"specialization_xp"`
	Items            int    `json:"items"`
}

// Summarize reads the headline fields of d.
func (d *Document) Summarize() Summary {
	text := func(path string) string {
		value, _ := d.Text(path)
		return value
	}
	number := func(path string) uint64 {
		value, _ := d.Uint(path)
		return value
	}
	return Summary{
		CharacterName:    text(PathCharacterName),
		Class:            text("state.class"),
		Difficulty:       text("state.player_difficulty"),
		Cash:             number(PathCash),
		Eridium:          number(PathEridium),
		CharacterLevel:   number("state.experience[0].level"),
		CharacterXP:      number(PathCharacterXP),
		SpecializationXP: number(PathSpecializationXP),
		Items:            len(d.Serials()),
	}
}

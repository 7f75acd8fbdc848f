// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package reference

import (
	"slices"
	"strings"
)

// Rarity is one rarity tier. Code is the component name that marks
// the tier inside internal item names.
type Rarity struct {
	Tier  uint8
	Code  string
	Name  string
	Color string
}

// Rarities lists the tiers from lowest to highest.
var Rarities = []Rarity{
	{Tier: 1, Code: "comp_01", Name: "Common", Color: "#FFFFFF"},
	{Tier: 2, Code: "comp_02", Name: "Uncommon", Color: "#00FF00"},
	{Tier: 3, Code: "comp_03", Name: "Rare", Color: "#0080FF"},
	{Tier: 4, Code: "comp_04", Name: "Epic", Color: "#A020F0"},
	{Tier: 5, Code: "comp_05", Name: "Legendary", Color: "#FFA500"},
}

// RarityByTier returns the tier numbered tier.
func RarityByTier(tier uint8) (Rarity, bool) {
	return find(Rarities, func(r Rarity) bool { return r.Tier == tier })
}

// RarityByCode returns the tier with component code code.
func RarityByCode(code string) (Rarity, bool) {
	return find(Rarities, func(r Rarity) bool { return r.Code == code })
}

// Kind is a weapon or gear type.
type Kind struct {
	Code        string
	Name        string
	Description string
}

var WeaponTypes = []Kind{
	{Code: "AR", Name: "Assault Rifle", Description: "Full-auto/burst fire rifles"},
	{Code: "HW", Name: "Heavy Weapon", Description: "Launchers and miniguns"},
	{Code: "PS", Name: "Pistol", Description: "Semi-auto and full-auto handguns"},
	{Code: "SG", Name: "Shotgun", Description: "High-damage spread weapons"},
	{Code: "SM", Name: "SMG", Description: "Submachine guns"},
	{Code: "SR", Name: "Sniper Rifle", Description: "Long-range precision weapons"},
}

var GearTypes = []Kind{
	{Code: "shield", Name: "Shield", Description: "Defensive equipment"},
	{Code: "classmod", Name: "Class Mod", Description: "Character class modifications"},
	{Code: "enhancement", Name: "Enhancement", Description: "Permanent character upgrades"},
	{Code: "gadget", Name: "Gadget", Description: "Deployable equipment"},
	{Code: "repair_kit", Name: "Repair Kit", Description: "Healing items"},
	{Code: "grenade", Name: "Grenade", Description: "Throwable explosive devices"},
}

// WeaponType looks up a weapon type by its two-letter code.
func WeaponType(code string) (Kind, bool) {
	return find(WeaponTypes, func(k Kind) bool { return k.Code == code })
}

// GearType looks up a gear type by code.
func GearType(code string) (Kind, bool) {
	return find(GearTypes, func(k Kind) bool { return k.Code == code })
}

// Manufacturer maps the three-letter prefix of internal names to the
// display name.
type Manufacturer struct {
	Code string
	Name string
}

var Manufacturers = []Manufacturer{
	{Code: "BOR", Name: "Borg"},
	{Code: "DAD", Name: "Daedalus"},
	{Code: "JAK", Name: "Jakobs"},
	{Code: "MAL", Name: "Maliwan"},
	{Code: "TED", Name: "Tediore"},
	{Code: "TOR", Name: "Torgue"},
	{Code: "VLA", Name: "Vladof"},
}

// ManufacturerByCode looks up a manufacturer by prefix.
func ManufacturerByCode(code string) (Manufacturer, bool) {
	return find(Manufacturers, func(m Manufacturer) bool { return m.Code == code })
}

func find[T any](table []T, match func(T) bool) (T, bool) {
	index := slices.IndexFunc(table, match)
	if index < 0 {
		var zero T
		return zero, false
	}
	return table[index], true
}

// Description is what [Describe] could determine about an internal
// name. Unknown fields are empty.
type Description struct {
	Manufacturer string `json:"manufacturer,omitempty"`
	WeaponType   string `json:"weapon_type,omitempty"`
	GearType     string `json:"gear_type,omitempty"`
	Rarity       string `json:"rarity,omitempty"`
	Legendary    string `json:"legendary,omitempty"`
}

// Describe classifies an internal name of the form
// "<MFR>_<TYPE>.<component>..." such as
// "JAK_PS.comp_05_legendary_SeventhSense" or "DAD_SG.part_barrel_01".
// Gear names are matched by the gear code anywhere in the name.
func Describe(name string) Description {
	var description Description

	if legendary, ok := LegendaryByInternal(name); ok {
		description.Legendary = legendary.Name
	}

	head, rest, _ := strings.Cut(name, ".")
	manufacturer, weaponType, _ := strings.Cut(head, "_")
	if found, ok := ManufacturerByCode(strings.ToUpper(manufacturer)); ok {
		description.Manufacturer = found.Name
	}
	if found, ok := WeaponType(strings.ToUpper(weaponType)); ok {
		description.WeaponType = found.Name
	}
	if description.WeaponType == "" {
		lower := strings.ToLower(name)
		for _, gear := range GearTypes {
			if strings.Contains(lower, gear.Code) {
				description.GearType = gear.Name
				break
			}
		}
	}

	for _, rarity := range Rarities {
		if strings.HasPrefix(rest, rarity.Code) || strings.Contains(rest, "."+rarity.Code) {
			description.Rarity = rarity.Name
			break
		}
	}
	return description
}

// String joins the known fields for display, for example
// "Legendary Jakobs Pistol (Seventh Sense)".
func (d Description) String() string {
	var words []string
	for _, word := range []string{d.Rarity, d.Manufacturer, d.WeaponType, d.GearType} {
		if word != "" {
			words = append(words, word)
		}
	}
	text := strings.Join(words, " ")
	if d.Legendary != "" {
		if text == "" {
			return d.Legendary
		}
		text += " (" + d.Legendary + ")"
	}
	return text
}

// Copyright 2026 The Lootforge Authors
// SPDX-License-Identifier: Apache-2.0

package reference

// Legendary is a known legendary item.
type Legendary struct {
	Internal     string
	Name         string
	WeaponType   string
	Manufacturer string
}

// Legendaries lists the known legendary weapons, grouped by
// manufacturer.
var Legendaries = []Legendary{
	{Internal: "DAD_AR.comp_05_legendary_OM", Name: "OM", WeaponType: "AR", Manufacturer: "DAD"},
	{Internal: "DAD_AR_Lumberjack", Name: "Lumberjack", WeaponType: "AR", Manufacturer: "DAD"},
	{Internal: "DAD_SG.comp_05_legendary_HeartGUn", Name: "Heart Gun", WeaponType: "SG", Manufacturer: "DAD"},
	{Internal: "DAD_PS.Zipper", Name: "Zipper", WeaponType: "PS", Manufacturer: "DAD"},
	{Internal: "DAD_PS.Rangefinder", Name: "Rangefinder", WeaponType: "PS", Manufacturer: "DAD"},
	{Internal: "DAD_SG.Durendal", Name: "Durendal", WeaponType: "SG", Manufacturer: "DAD"},

	{Internal: "JAK_AR.comp_05_legendary_rowan", Name: "Rowan's Call", WeaponType: "AR", Manufacturer: "JAK"},
	{Internal: "JAK_PS.comp_05_legendary_SeventhSense", Name: "Seventh Sense", WeaponType: "PS", Manufacturer: "JAK"},
	{Internal: "JAK_PS.comp_05_legendary_kingsgambit", Name: "King's Gambit", WeaponType: "PS", Manufacturer: "JAK"},
	{Internal: "JAK_PS.comp_05_legendary_phantom_flame", Name: "Phantom Flame", WeaponType: "PS", Manufacturer: "JAK"},
	{Internal: "JAK_SG.comp_05_legendary_RainbowVomit", Name: "Rainbow Vomit", WeaponType: "SG", Manufacturer: "JAK"},
	{Internal: "JAK_SR.comp_05_legendary_ballista", Name: "Ballista", WeaponType: "SR", Manufacturer: "JAK"},

	{Internal: "MAL_HW.comp_05_legendary_GammaVoid", Name: "Gamma Void", WeaponType: "HW", Manufacturer: "MAL"},
	{Internal: "MAL_SM.comp_05_legendary_OhmIGot", Name: "Ohm I Got", WeaponType: "SM", Manufacturer: "MAL"},

	{Internal: "BOR_SM.comp_05_legendary_p", Name: "Unknown Borg SMG", WeaponType: "SM", Manufacturer: "BOR"},

	{Internal: "TED_AR.comp_05_legendary_Chuck", Name: "Chuck", WeaponType: "AR", Manufacturer: "TED"},
	{Internal: "TED_PS.comp_05_legendary_Sideshow", Name: "Sideshow", WeaponType: "PS", Manufacturer: "TED"},
	{Internal: "TED_SG.comp_05_legendary_a", Name: "Unknown Tediore Shotgun", WeaponType: "SG", Manufacturer: "TED"},

	{Internal: "TOR_AR.comp_05_legendary_Trogdor", Name: "Trogdor", WeaponType: "AR", Manufacturer: "TOR"},
	{Internal: "TOR_HW.comp_05_legendary_ravenfire", Name: "Ravenfire", WeaponType: "HW", Manufacturer: "TOR"},
	{Internal: "TOR_SG.comp_05_legendary_Linebacker", Name: "Linebacker", WeaponType: "SG", Manufacturer: "TOR"},

	{Internal: "VLA_AR.comp_05_legendary_WomboCombo", Name: "Wombo Combo", WeaponType: "AR", Manufacturer: "VLA"},
	{Internal: "VLA_HW.comp_05_legendary_AtlingGun", Name: "Atling Gun", WeaponType: "HW", Manufacturer: "VLA"},
	{Internal: "VLA_SM.comp_05_legendary_KaoSon", Name: "Kaoson", WeaponType: "SM", Manufacturer: "VLA"},
	{Internal: "VLA_SR.comp_05_legendary_Vyudazy", Name: "Vyudazy", WeaponType: "SR", Manufacturer: "VLA"},
}

// LegendaryByInternal looks up a legendary by its internal name.
func LegendaryByInternal(internal string) (Legendary, bool) {
	return find(Legendaries, func(l Legendary) bool { return l.Internal == internal })
}

// LegendaryByName looks up a legendary by display name.
func LegendaryByName(name string) (Legendary, bool) {
	return find(Legendaries, func(l Legendary) bool { return l.Name == name })
}

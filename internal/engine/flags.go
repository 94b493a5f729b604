package engine

import "strings"

// GameFlags is the engine's game-flag bitset.
type GameFlags uint64

const (
	FlagFixGlitch GameFlags = 1 << iota
	FlagFastPendant
	FlagUnlockedMagic
	FlagGearRando
	FlagFastTabs
	FlagBossRando
	FlagChronosanity
	FlagZealEnd
	FlagBossScaling
	FlagLockedChars
	// FlagMystery marks a seed whose settings were rolled by the
	// engine and hidden from the player.
	FlagMystery
)

// Has reports whether all flags in mask are set.
func (f GameFlags) Has(mask GameFlags) bool {
	return f&mask == mask
}

// flagLetters drive FlagString; order is fixed so the string is stable
// for a given flag set.
var flagLetters = []struct {
	flag   GameFlags
	letter string
}{
	{FlagFixGlitch, "g"},
	{FlagFastPendant, "p"},
	{FlagUnlockedMagic, "m"},
	{FlagGearRando, "q"},
	{FlagFastTabs, "t"},
	{FlagBossRando, "ro"},
	{FlagChronosanity, "cr"},
	{FlagZealEnd, "z"},
	{FlagBossScaling, "b"},
	{FlagLockedChars, "l"},
}

var modeLetters = map[GameMode]string{
	ModeStandard:      "st",
	ModeLostWorlds:    "lw",
	ModeIceAge:        "ia",
	ModeLegacyOfCyrus: "loc",
	ModeVanillaRando:  "van",
}

// FlagString renders the compact mode+flag string used in ROM file
// names and share displays.
func (s *Settings) FlagString() string {
	var b strings.Builder

	if mode, ok := modeLetters[s.GameMode]; ok {
		b.WriteString(mode)
	}
	b.WriteString(".")

	for _, fl := range flagLetters {
		if s.GameFlags.Has(fl.flag) {
			b.WriteString(fl.letter)
		}
	}

	return b.String()
}

// CosmeticFlags is the engine's cosmetic-flag bitset. Cosmetic flags
// never affect logic, so they can be chosen at ROM download time.
type CosmeticFlags uint64

const (
	CosmeticReduceFlash CosmeticFlags = 1 << iota
	CosmeticZenanAltMusic
	CosmeticDeathPeakAltMusic
	CosmeticQuietMode
)

// Has reports whether all flags in mask are set.
func (f CosmeticFlags) Has(mask CosmeticFlags) bool {
	return f&mask == mask
}

package rando

import "ctjot-server/internal/engine"

// Static lookup tables from form values to engine enums. Unknown form
// values normalize to the given default instead of erroring.

var gameModeMap = map[string]engine.GameMode{
	"standard":        engine.ModeStandard,
	"lost_worlds":     engine.ModeLostWorlds,
	"ice_age":         engine.ModeIceAge,
	"legacy_of_cyrus": engine.ModeLegacyOfCyrus,
	"vanilla_rando":   engine.ModeVanillaRando,
}

var difficultyMap = map[string]engine.Difficulty{
	"easy":   engine.DifficultyEasy,
	"normal": engine.DifficultyNormal,
	"hard":   engine.DifficultyHard,
}

var techOrderMap = map[string]engine.TechOrder{
	"normal":          engine.TechOrderNormal,
	"fully_random":    engine.TechOrderFullRandom,
	"balanced_random": engine.TechOrderBalancedRandom,
}

var shopPriceMap = map[string]engine.ShopPrices{
	"normal":        engine.ShopPricesNormal,
	"free":          engine.ShopPricesFree,
	"mostly_random": engine.ShopPricesMostlyRandom,
	"fully_random":  engine.ShopPricesFullyRandom,
}

var gameFlagMap = map[string]engine.GameFlags{
	"fix_glitch":     engine.FlagFixGlitch,
	"fast_pendant":   engine.FlagFastPendant,
	"unlocked_magic": engine.FlagUnlockedMagic,
	"gear_rando":     engine.FlagGearRando,
	"fast_tabs":      engine.FlagFastTabs,
	"boss_rando":     engine.FlagBossRando,
	"chronosanity":   engine.FlagChronosanity,
	"zeal_end":       engine.FlagZealEnd,
	"boss_scaling":   engine.FlagBossScaling,
	"locked_chars":   engine.FlagLockedChars,
}

func parseGameMode(value string, fallback engine.GameMode) engine.GameMode {
	if mode, ok := gameModeMap[value]; ok {
		return mode
	}
	return fallback
}

func parseDifficulty(value string, fallback engine.Difficulty) engine.Difficulty {
	if diff, ok := difficultyMap[value]; ok {
		return diff
	}
	return fallback
}

func parseTechOrder(value string, fallback engine.TechOrder) engine.TechOrder {
	if order, ok := techOrderMap[value]; ok {
		return order
	}
	return fallback
}

func parseShopPrices(value string, fallback engine.ShopPrices) engine.ShopPrices {
	if prices, ok := shopPriceMap[value]; ok {
		return prices
	}
	return fallback
}

// parseGameFlags folds a list of form flag names into a bitset,
// ignoring names it does not recognize.
func parseGameFlags(values []string) engine.GameFlags {
	var flags engine.GameFlags
	for _, value := range values {
		if flag, ok := gameFlagMap[value]; ok {
			flags |= flag
		}
	}
	return flags
}

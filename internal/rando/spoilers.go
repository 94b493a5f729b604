package rando

import (
	"sort"

	"ctjot-server/internal/engine"
)

// twinBossID is the boss identifier the engine uses for the duplicated
// twin boss fight; its display name comes from the underlying enemy.
const twinBossID = "twin_boss"

type CharacterSpoiler struct {
	Location  string `json:"location"`
	Character string `json:"character"`
	Reassign  string `json:"reassign"`
}

type KeyItemSpoiler struct {
	Location string `json:"location"`
	KeyItem  string `json:"key"`
}

type BossSpoiler struct {
	Location string `json:"location"`
	Boss     string `json:"boss"`
}

// WebSpoilers is the spoiler summary rendered on the seed share page.
type WebSpoilers struct {
	Characters []CharacterSpoiler `json:"characters"`
	KeyItems   []KeyItemSpoiler   `json:"key_items"`
	Bosses     []BossSpoiler      `json:"bosses"`
}

// WebSpoilerLog walks a generated config and builds the display
// summary: character recruitment spots, key item placements, and boss
// assignments with the twin boss resolved to its underlying enemy.
func (a *Adapter) WebSpoilerLog(config *engine.Config) *WebSpoilers {
	spoilers := &WebSpoilers{
		Characters: make([]CharacterSpoiler, 0, len(config.CharAssignments)),
		KeyItems:   make([]KeyItemSpoiler, 0, len(config.KeyItemLocations)),
		Bosses:     make([]BossSpoiler, 0, len(config.BossAssignments)),
	}

	for _, assign := range config.CharAssignments {
		spoilers.Characters = append(spoilers.Characters, CharacterSpoiler{
			Location:  assign.RecruitSpot,
			Character: assign.HeldChar,
			Reassign:  assign.Reassign,
		})
	}

	for _, location := range config.KeyItemLocations {
		spoilers.KeyItems = append(spoilers.KeyItems, KeyItemSpoiler{
			Location: location.Name,
			KeyItem:  location.KeyItem,
		})
	}

	// Boss assignments are a map; sort the spots so the output is
	// stable between requests.
	spots := make([]string, 0, len(config.BossAssignments))
	for spot := range config.BossAssignments {
		spots = append(spots, spot)
	}
	sort.Strings(spots)

	for _, spot := range spots {
		boss := config.BossAssignments[spot]
		if boss == twinBossID {
			if name, ok := config.EnemyNames[config.TwinBossEnemyID]; ok {
				boss = "Twin " + name
			}
		}
		spoilers.Bosses = append(spoilers.Bosses, BossSpoiler{
			Location: spot,
			Boss:     boss,
		})
	}

	return spoilers
}

package engine

// GameMode selects which overall game structure the engine generates.
type GameMode string

const (
	ModeStandard      GameMode = "standard"
	ModeLostWorlds    GameMode = "lost_worlds"
	ModeIceAge        GameMode = "ice_age"
	ModeLegacyOfCyrus GameMode = "legacy_of_cyrus"
	ModeVanillaRando  GameMode = "vanilla_rando"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

type TechOrder string

const (
	TechOrderNormal         TechOrder = "normal"
	TechOrderFullRandom     TechOrder = "fully_random"
	TechOrderBalancedRandom TechOrder = "balanced_random"
)

type ShopPrices string

const (
	ShopPricesNormal       ShopPrices = "normal"
	ShopPricesFree         ShopPrices = "free"
	ShopPricesMostlyRandom ShopPrices = "mostly_random"
	ShopPricesFullyRandom  ShopPrices = "fully_random"
)

// CTOptions are the in-game option values written into the ROM's
// option menu defaults.
type CTOptions struct {
	StereoAudio      bool `json:"stereo_audio"`
	SaveMenuCursor   bool `json:"save_menu_cursor"`
	SaveBattleCursor bool `json:"save_battle_cursor"`
	SkillItemInfo    bool `json:"skill_item_info"`
	ConsistentPaging bool `json:"consistent_paging"`
	BattleSpeed      int  `json:"battle_speed"`
	MenuBackground   int  `json:"menu_background"`
	BattleMsgSpeed   int  `json:"battle_msg_speed"`
	BattleGaugeStyle int  `json:"battle_gauge_style"`
}

// Settings is the engine's configuration-of-intent object. The web
// layer populates it from form input and hands it to the engine; it
// is also what gets persisted alongside a generated seed.
type Settings struct {
	Seed            string        `json:"seed"`
	GameMode        GameMode      `json:"game_mode"`
	ItemDifficulty  Difficulty    `json:"item_difficulty"`
	EnemyDifficulty Difficulty    `json:"enemy_difficulty"`
	TechOrder       TechOrder     `json:"tech_order"`
	ShopPrices      ShopPrices    `json:"shop_prices"`
	GameFlags       GameFlags     `json:"game_flags"`
	CosmeticFlags   CosmeticFlags `json:"cosmetic_flags"`
	CharNames       [8]string     `json:"char_names"`
	Options         CTOptions     `json:"options"`
}

// DefaultCharNames are the vanilla character and Epoch names, indexed
// the same way Settings.CharNames is.
var DefaultCharNames = [8]string{
	"Crono", "Marle", "Lucca", "Robo", "Frog", "Ayla", "Magus", "Epoch",
}

// DefaultSettings returns the site's preset: Legacy of Cyrus with the
// standard quality-of-life flags enabled.
func DefaultSettings() Settings {
	return Settings{
		GameMode:        ModeLegacyOfCyrus,
		ItemDifficulty:  DifficultyNormal,
		EnemyDifficulty: DifficultyNormal,
		TechOrder:       TechOrderFullRandom,
		ShopPrices:      ShopPricesNormal,
		GameFlags:       FlagFixGlitch | FlagFastPendant | FlagUnlockedMagic | FlagGearRando | FlagFastTabs,
		CharNames:       DefaultCharNames,
		Options: CTOptions{
			BattleSpeed:    4,
			BattleMsgSpeed: 4,
		},
	}
}

// CharAssignment describes where a character is recruited and which
// character the game treats them as after reassignment.
type CharAssignment struct {
	RecruitSpot string `json:"recruit_spot"`
	HeldChar    string `json:"held_char"`
	Reassign    string `json:"reassign"`
}

// KeyItemLocation is a treasure spot holding a key item.
type KeyItemLocation struct {
	Name    string `json:"name"`
	KeyItem string `json:"key_item"`
}

// Config is the engine's fully-resolved, generated-seed data object.
// The web layer only reads it: it walks these structures to produce
// spoiler summaries and stores the whole document for later ROM
// patching.
type Config struct {
	CharAssignments  []CharAssignment  `json:"char_assignments"`
	KeyItemLocations []KeyItemLocation `json:"key_item_locations"`
	// BossAssignments maps boss spot name to the boss identifier
	// placed there.
	BossAssignments map[string]string `json:"boss_assignments"`
	// TwinBossEnemyID identifies which enemy the twin boss was built
	// from; resolved through EnemyNames for display.
	TwinBossEnemyID string `json:"twin_boss_enemy_id,omitempty"`
	// EnemyNames maps enemy identifiers to display names.
	EnemyNames map[string]string `json:"enemy_names,omitempty"`
}

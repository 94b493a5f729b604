package rando

// GenerateForm carries the user's seed-generation request. Every field
// except the spoiler toggle is optional; omitted or unrecognized values
// fall back to the site preset.
type GenerateForm struct {
	Seed       string   `json:"seed"`
	SpoilerLog bool     `json:"spoiler_log"`
	GameMode   string   `json:"game_mode"`
	ItemDiff   string   `json:"item_difficulty"`
	EnemyDiff  string   `json:"enemy_difficulty"`
	TechOrder  string   `json:"tech_order"`
	ShopPrices string   `json:"shop_prices"`
	GameFlags  []string `json:"game_flags"`
	Mystery    bool     `json:"mystery"`
}

// RomForm carries the cosmetic choices submitted on the seed download
// page. Boolean option pointers distinguish "unchecked" from "not
// submitted at all" so absent fields leave the settings untouched.
type RomForm struct {
	ShareID string

	// Cosmetic
	ReduceFlashes     bool
	ZenanAltMusic     bool
	DeathPeakAltMusic bool
	QuietMode         bool

	// Character/Epoch renames. Invalid names fall back to defaults
	// rather than failing the request.
	CronoName string
	MarleName string
	LuccaName string
	RoboName  string
	FrogName  string
	AylaName  string
	MagusName string
	EpochName string

	// In-game options
	StereoAudio      *bool
	SaveMenuCursor   *bool
	SaveBattleCursor *bool
	SkillItemInfo    *bool
	ConsistentPaging *bool

	// Integer options are 1-based in the form; zero means unset.
	BattleSpeed         int
	BackgroundSelection int
	BattleMessageSpeed  int
	BattleGaugeStyle    *int
}

// names returns the rename fields in Settings.CharNames order.
func (f *RomForm) names() [8]string {
	return [8]string{
		f.CronoName, f.MarleName, f.LuccaName, f.RoboName,
		f.FrogName, f.AylaName, f.MagusName, f.EpochName,
	}
}

// Package rando is the translation layer between the web forms and the
// randomizer engine. It maps form fields to engine settings, drives
// seed generation, and walks the engine's output to build the
// human-readable spoiler summaries shown on the site.
package rando

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"ctjot-server/internal/engine"
	"ctjot-server/internal/shared/config"
	apperrors "ctjot-server/internal/shared/errors"
)

// ErrMysterySeedClone is returned when a caller tries to clone the
// settings of a mystery seed. Mystery settings are rewritten by the
// engine during generation, so there is nothing meaningful to clone.
var ErrMysterySeedClone = errors.New("mystery seeds cannot be cloned")

const maxSeedLength = 25

type Adapter struct {
	engine engine.Randomizer
	cfg    config.RandomizerConfig
	logger *slog.Logger
}

func New(eng engine.Randomizer, cfg config.RandomizerConfig, logger *slog.Logger) *Adapter {
	return &Adapter{
		engine: eng,
		cfg:    cfg,
		logger: logger,
	}
}

// SettingsFromForm converts a GenerateForm into engine settings. Every
// missing or unrecognized field falls back to the site preset, and an
// empty seed gets a random two-name seed string.
func (a *Adapter) SettingsFromForm(form *GenerateForm) (engine.Settings, error) {
	settings := engine.DefaultSettings()

	if form.Seed == "" {
		seed, err := a.RandomSeed()
		if err != nil {
			return settings, err
		}
		settings.Seed = seed
	} else {
		seed := form.Seed
		if len(seed) > maxSeedLength {
			seed = seed[:maxSeedLength]
		}
		settings.Seed = seed
	}

	settings.GameMode = parseGameMode(form.GameMode, settings.GameMode)
	settings.ItemDifficulty = parseDifficulty(form.ItemDiff, settings.ItemDifficulty)
	settings.EnemyDifficulty = parseDifficulty(form.EnemyDiff, settings.EnemyDifficulty)
	settings.TechOrder = parseTechOrder(form.TechOrder, settings.TechOrder)
	settings.ShopPrices = parseShopPrices(form.ShopPrices, settings.ShopPrices)

	if len(form.GameFlags) > 0 {
		settings.GameFlags = parseGameFlags(form.GameFlags)
	}
	if form.Mystery {
		settings.GameFlags |= engine.FlagMystery
	}

	return settings, nil
}

// ConfigureSeedFromForm builds settings from the form and generates a
// seed config. Race seeds (no spoiler log) get a nonce appended to the
// seed value before generation so race and non-race ROMs sharing a
// seed string are not identical; the original seed is restored on the
// settings afterward so the stored settings stay human-readable.
// Returns the settings, the generated config, and the nonce used (empty
// for non-race seeds).
func (a *Adapter) ConfigureSeedFromForm(ctx context.Context, form *GenerateForm) (*engine.Settings, *engine.Config, string, error) {
	settings, err := a.SettingsFromForm(form)
	if err != nil {
		return nil, nil, "", apperrors.WrapInternal("failed to build settings", err)
	}

	logger := a.logger.With("component", "rando_adapter", "operation", "configure_from_form", "seed", settings.Seed)

	nonce := ""
	if !form.SpoilerLog {
		nonce = microNonce()
	}

	config, err := a.generateWithNonce(ctx, &settings, nonce)
	if err != nil {
		logger.Error("Engine failed to generate seed", "error", err)
		return nil, nil, "", apperrors.WrapExternal("randomizer engine failed to generate seed", err)
	}

	logger.Info("Seed generated", "race", !form.SpoilerLog, "mystery", settings.GameFlags.Has(engine.FlagMystery))
	return &settings, config, nonce, nil
}

// ConfigureSeedFromSettings generates a new seed from existing
// settings (the clone path). The seed string is re-rolled so the clone
// differs from the original, and race clones get the same nonce
// treatment as fresh race seeds. Fails for mystery settings.
func (a *Adapter) ConfigureSeedFromSettings(ctx context.Context, settings *engine.Settings, isRaceSeed bool) (*engine.Config, string, error) {
	if settings.GameFlags.Has(engine.FlagMystery) {
		return nil, "", ErrMysterySeedClone
	}

	logger := a.logger.With("component", "rando_adapter", "operation", "configure_from_settings", "seed", settings.Seed)

	newSeed := settings.Seed
	for newSeed == settings.Seed {
		seed, err := a.RandomSeed()
		if err != nil {
			return nil, "", apperrors.WrapInternal("failed to roll new seed", err)
		}
		newSeed = seed
	}
	settings.Seed = newSeed

	nonce := ""
	if isRaceSeed {
		nonce = microNonce()
	}

	config, err := a.generateWithNonce(ctx, settings, nonce)
	if err != nil {
		logger.Error("Engine failed to generate cloned seed", "error", err)
		return nil, "", apperrors.WrapExternal("randomizer engine failed to generate seed", err)
	}

	logger.Info("Cloned seed generated", "new_seed", newSeed, "race", isRaceSeed)
	return config, nonce, nil
}

// generateWithNonce runs config generation with the nonce temporarily
// appended to the seed value. The original seed is always restored,
// even when the engine fails.
func (a *Adapter) generateWithNonce(ctx context.Context, settings *engine.Settings, nonce string) (*engine.Config, error) {
	if nonce == "" {
		return a.engine.GenerateConfig(ctx, settings)
	}

	seed := settings.Seed
	settings.Seed = seed + nonce
	config, err := a.engine.GenerateConfig(ctx, settings)
	settings.Seed = seed
	return config, err
}

// ApplyROMForm folds the download page's cosmetic choices into the
// settings: cosmetic flags, character renames, and in-game options.
func (a *Adapter) ApplyROMForm(settings *engine.Settings, form *RomForm) {
	if form.ReduceFlashes {
		settings.CosmeticFlags |= engine.CosmeticReduceFlash
	}
	if form.ZenanAltMusic {
		settings.CosmeticFlags |= engine.CosmeticZenanAltMusic
	}
	if form.DeathPeakAltMusic {
		settings.CosmeticFlags |= engine.CosmeticDeathPeakAltMusic
	}
	if form.QuietMode {
		settings.CosmeticFlags |= engine.CosmeticQuietMode
	}

	names := form.names()
	for i := range settings.CharNames {
		settings.CharNames[i] = CharacterName(names[i], engine.DefaultCharNames[i])
	}

	if form.StereoAudio != nil {
		settings.Options.StereoAudio = *form.StereoAudio
	}
	if form.SaveMenuCursor != nil {
		settings.Options.SaveMenuCursor = *form.SaveMenuCursor
	}
	if form.SaveBattleCursor != nil {
		settings.Options.SaveBattleCursor = *form.SaveBattleCursor
	}
	if form.SkillItemInfo != nil {
		settings.Options.SkillItemInfo = *form.SkillItemInfo
	}
	if form.ConsistentPaging != nil {
		settings.Options.ConsistentPaging = *form.ConsistentPaging
	}

	// Integer options are 1-based on the form and 0-based in the ROM.
	if form.BattleSpeed != 0 {
		settings.Options.BattleSpeed = clamp(form.BattleSpeed-1, 0, 7)
	}
	if form.BackgroundSelection != 0 {
		settings.Options.MenuBackground = clamp(form.BackgroundSelection-1, 0, 7)
	}
	if form.BattleMessageSpeed != 0 {
		settings.Options.BattleMsgSpeed = clamp(form.BattleMessageSpeed-1, 0, 7)
	}
	if form.BattleGaugeStyle != nil {
		settings.Options.BattleGaugeStyle = clamp(*form.BattleGaugeStyle, 0, 2)
	}
}

// GenerateROM asks the engine to apply the seed's config to the given
// ROM bytes (the player's own upload, not the server's base ROM).
func (a *Adapter) GenerateROM(ctx context.Context, settings *engine.Settings, config *engine.Config, rom []byte) ([]byte, error) {
	patched, err := a.engine.GenerateROM(ctx, settings, config, rom)
	if err != nil {
		return nil, apperrors.WrapExternal("randomizer engine failed to generate ROM", err)
	}
	return patched, nil
}

// ROMName builds the download file name for a seed. Mystery seeds hide
// the flag string so the name does not leak settings.
func (a *Adapter) ROMName(settings *engine.Settings, shareID string) string {
	if settings.GameFlags.Has(engine.FlagMystery) {
		return "ctjot_mystery_" + shareID + ".sfc"
	}
	return "ctjot_" + settings.FlagString() + "_" + shareID + ".sfc"
}

// SpoilerLog renders the engine's full text spoiler log for a seed.
func (a *Adapter) SpoilerLog(ctx context.Context, settings *engine.Settings, config *engine.Config) (string, error) {
	var buf bytes.Buffer
	if err := a.engine.WriteSpoilerLog(ctx, &buf, settings, config); err != nil {
		return "", apperrors.WrapExternal("randomizer engine failed to write spoiler log", err)
	}
	return buf.String(), nil
}

// JSONSpoilerLog renders the engine's machine-readable spoiler log.
func (a *Adapter) JSONSpoilerLog(ctx context.Context, settings *engine.Settings, config *engine.Config) (string, error) {
	var buf bytes.Buffer
	if err := a.engine.WriteJSONSpoilerLog(ctx, &buf, settings, config); err != nil {
		return "", apperrors.WrapExternal("randomizer engine failed to write JSON spoiler log", err)
	}
	return buf.String(), nil
}

// ShareDetails renders the seed summary shown on share pages. Mystery
// seeds only reveal that they are mysteries.
func (a *Adapter) ShareDetails(ctx context.Context, settings *engine.Settings) (string, error) {
	if settings.GameFlags.Has(engine.FlagMystery) {
		return "Mystery seed!\n", nil
	}

	var buf bytes.Buffer
	buf.WriteString("Seed: " + settings.Seed + "\n")
	if err := a.engine.WriteSettingsSpoilers(ctx, &buf, settings); err != nil {
		return "", apperrors.WrapExternal("randomizer engine failed to write settings spoilers", err)
	}
	return buf.String(), nil
}

// CharacterName validates a user-chosen character name and falls back
// to the default when it is empty, longer than five characters, or
// contains anything but ASCII letters and digits. The five character
// limit is the in-game name length.
func CharacterName(name, defaultName string) string {
	if name == "" || len(name) > 5 || !isAlnum(name) {
		return defaultName
	}
	return name
}

func isAlnum(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// microNonce derives an arbitrary nonce from the current timestamp's
// microsecond component.
func microNonce() string {
	return strconv.Itoa(time.Now().Nanosecond() / 1000)
}

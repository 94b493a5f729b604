package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameFlagsHas(t *testing.T) {
	flags := FlagFixGlitch | FlagBossRando

	assert.True(t, flags.Has(FlagFixGlitch))
	assert.True(t, flags.Has(FlagBossRando))
	assert.True(t, flags.Has(FlagFixGlitch|FlagBossRando))
	assert.False(t, flags.Has(FlagMystery))
	assert.False(t, flags.Has(FlagFixGlitch|FlagMystery))
}

func TestFlagString(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     string
	}{
		{
			name: "default preset",
			settings: Settings{
				GameMode:  ModeLegacyOfCyrus,
				GameFlags: FlagFixGlitch | FlagFastPendant | FlagUnlockedMagic | FlagGearRando | FlagFastTabs,
			},
			want: "loc.gpmqt",
		},
		{
			name: "standard mode no flags",
			settings: Settings{
				GameMode: ModeStandard,
			},
			want: "st.",
		},
		{
			name: "multi letter flags",
			settings: Settings{
				GameMode:  ModeLostWorlds,
				GameFlags: FlagBossRando | FlagChronosanity,
			},
			want: "lw.rocr",
		},
		{
			name: "flag order is stable regardless of set order",
			settings: Settings{
				GameMode:  ModeIceAge,
				GameFlags: FlagLockedChars | FlagFixGlitch,
			},
			want: "ia.gl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.FlagString())
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, ModeLegacyOfCyrus, settings.GameMode)
	assert.Equal(t, DifficultyNormal, settings.ItemDifficulty)
	assert.Equal(t, DifficultyNormal, settings.EnemyDifficulty)
	assert.Equal(t, TechOrderFullRandom, settings.TechOrder)
	assert.Equal(t, ShopPricesNormal, settings.ShopPrices)
	assert.Equal(t, DefaultCharNames, settings.CharNames)
	assert.Equal(t, 4, settings.Options.BattleSpeed)
	assert.Equal(t, 4, settings.Options.BattleMsgSpeed)
	assert.False(t, settings.GameFlags.Has(FlagMystery))
}

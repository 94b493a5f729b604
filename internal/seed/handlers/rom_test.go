package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctjot-server/internal/rando"
)

func buildRomForm(t *testing.T, fields map[string]string) *rando.RomForm {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("rom_file", "ct.sfc")
	require.NoError(t, err)
	_, err = part.Write([]byte("rom bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/seeds/abc123/rom", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return romFormFromRequest(req, "abc123")
}

func TestRomFormFromRequest(t *testing.T) {
	t.Run("checkbox fields map to booleans", func(t *testing.T) {
		form := buildRomForm(t, map[string]string{
			"reduce_flashes": "on",
			"quiet_mode":     "true",
		})

		assert.True(t, form.ReduceFlashes)
		assert.True(t, form.QuietMode)
		assert.False(t, form.ZenanAltMusic)
		assert.Equal(t, "abc123", form.ShareID)
	})

	t.Run("absent optional booleans stay nil", func(t *testing.T) {
		form := buildRomForm(t, map[string]string{})

		assert.Nil(t, form.StereoAudio)
		assert.Nil(t, form.SaveMenuCursor)
		assert.Nil(t, form.BattleGaugeStyle)
	})

	t.Run("submitted optional booleans are set", func(t *testing.T) {
		form := buildRomForm(t, map[string]string{
			"stereo_audio":     "off",
			"save_menu_cursor": "on",
		})

		require.NotNil(t, form.StereoAudio)
		assert.False(t, *form.StereoAudio)
		require.NotNil(t, form.SaveMenuCursor)
		assert.True(t, *form.SaveMenuCursor)
	})

	t.Run("integer fields parse with zero meaning unset", func(t *testing.T) {
		form := buildRomForm(t, map[string]string{
			"battle_speed":       "3",
			"battle_gauge_style": "2",
		})

		assert.Equal(t, 3, form.BattleSpeed)
		assert.Equal(t, 0, form.BackgroundSelection)
		require.NotNil(t, form.BattleGaugeStyle)
		assert.Equal(t, 2, *form.BattleGaugeStyle)
	})

	t.Run("unparseable integers are ignored", func(t *testing.T) {
		form := buildRomForm(t, map[string]string{
			"battle_speed":       "fast",
			"battle_gauge_style": "fancy",
		})

		assert.Equal(t, 0, form.BattleSpeed)
		assert.Nil(t, form.BattleGaugeStyle)
	})

	t.Run("character names pass through raw", func(t *testing.T) {
		form := buildRomForm(t, map[string]string{
			"crono_name": "Bob",
			"epoch_name": "Wings",
		})

		assert.Equal(t, "Bob", form.CronoName)
		assert.Equal(t, "Wings", form.EpochName)
	})
}

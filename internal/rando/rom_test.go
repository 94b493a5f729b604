package rando

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctjot-server/internal/shared/config"
)

func TestNormalizeROM(t *testing.T) {
	t.Run("unheadered ROM passes through", func(t *testing.T) {
		data := make([]byte, romSize)
		data[0] = 0x42

		got, err := NormalizeROM(data)
		require.NoError(t, err)
		assert.Len(t, got, romSize)
		assert.Equal(t, byte(0x42), got[0])
	})

	t.Run("copier header is stripped", func(t *testing.T) {
		data := make([]byte, romSize+copierHeadSize)
		data[copierHeadSize] = 0x42

		got, err := NormalizeROM(data)
		require.NoError(t, err)
		assert.Len(t, got, romSize)
		assert.Equal(t, byte(0x42), got[0])
	})

	t.Run("wrong sizes are rejected", func(t *testing.T) {
		for _, size := range []int{0, 123, romSize - 1, romSize + 1, romSize + copierHeadSize + 1} {
			_, err := NormalizeROM(make([]byte, size))
			assert.Error(t, err, "size %d should be rejected", size)
		}
	})
}

func TestBaseROM(t *testing.T) {
	t.Run("headered base ROM is normalized", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ct.sfc")
		require.NoError(t, os.WriteFile(path, make([]byte, romSize+copierHeadSize), 0o644))

		adapter := New(&fakeEngine{}, config.RandomizerConfig{BaseROMPath: path}, slog.Default())

		rom, err := adapter.BaseROM()
		require.NoError(t, err)
		assert.Len(t, rom, romSize)
	})

	t.Run("missing base ROM is an error", func(t *testing.T) {
		adapter := New(&fakeEngine{}, config.RandomizerConfig{
			BaseROMPath: filepath.Join(t.TempDir(), "missing.sfc"),
		}, slog.Default())

		_, err := adapter.BaseROM()
		assert.Error(t, err)
	})
}

package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctjot-server/internal/engine"
	"ctjot-server/internal/rando"
	"ctjot-server/internal/shared/config"
	apperrors "ctjot-server/internal/shared/errors"
)

// fakeEngine is a canned engine for service tests.
type fakeEngine struct{}

func (f *fakeEngine) GenerateConfig(_ context.Context, _ *engine.Settings) (*engine.Config, error) {
	return &engine.Config{
		BossAssignments: map[string]string{"Zenan Bridge": "golem"},
	}, nil
}

func (f *fakeEngine) GenerateROM(_ context.Context, _ *engine.Settings, _ *engine.Config, rom []byte) ([]byte, error) {
	return rom, nil
}

func (f *fakeEngine) WriteSpoilerLog(_ context.Context, w io.Writer, _ *engine.Settings, _ *engine.Config) error {
	_, err := w.Write([]byte("spoiler log\n"))
	return err
}

func (f *fakeEngine) WriteJSONSpoilerLog(_ context.Context, w io.Writer, _ *engine.Settings, _ *engine.Config) error {
	_, err := w.Write([]byte(`{"spoilers":true}`))
	return err
}

func (f *fakeEngine) WriteSettingsSpoilers(_ context.Context, w io.Writer, _ *engine.Settings) error {
	_, err := w.Write([]byte("Mode: Legacy of Cyrus\n"))
	return err
}

// fakeStore keeps seeds in memory and can inject share-ID collisions.
type fakeStore struct {
	seeds      map[string]*Seed
	collisions int
	created    int
	nextID     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{seeds: make(map[string]*Seed)}
}

func (s *fakeStore) Create(_ context.Context, seed *Seed) (*Seed, error) {
	if s.collisions > 0 {
		s.collisions--
		return nil, &pq.Error{Code: "23505"}
	}
	s.nextID++
	s.created++
	seed.ID = s.nextID
	seed.CreatedAt = time.Now()
	stored := *seed
	s.seeds[seed.ShareID] = &stored
	return seed, nil
}

func (s *fakeStore) GetByShareID(_ context.Context, shareID string) (*Seed, error) {
	if stored, ok := s.seeds[shareID]; ok {
		copied := *stored
		return &copied, nil
	}
	return nil, nil
}

func (s *fakeStore) Delete(_ context.Context, shareID string) error {
	if _, ok := s.seeds[shareID]; !ok {
		return sql.ErrNoRows
	}
	delete(s.seeds, shareID)
	return nil
}

func (s *fakeStore) Count(_ context.Context) (int, error) {
	return len(s.seeds), nil
}

func (s *fakeStore) ListRecent(_ context.Context, limit int) ([]Seed, error) {
	out := make([]Seed, 0, limit)
	for _, stored := range s.seeds {
		if len(out) == limit {
			break
		}
		out = append(out, *stored)
	}
	return out, nil
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()

	namesPath := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(namesPath, []byte("Crono\nMarle\nLucca\nFrog\nAyla\nMagus\n"), 0o644))

	adapter := rando.New(&fakeEngine{}, config.RandomizerConfig{NamesPath: namesPath}, slog.Default())
	cache := NewSpoilerCache(nil, time.Hour, slog.Default())

	return NewService(store, adapter, cache, slog.Default())
}

func TestServiceGenerate(t *testing.T) {
	t.Run("race seed stores nonce and race flag", func(t *testing.T) {
		store := newFakeStore()
		service := newTestService(t, store)

		summary, err := service.Generate(context.Background(), &rando.GenerateForm{
			Seed:       "AylaKino",
			SpoilerLog: false,
		})
		require.NoError(t, err)

		assert.True(t, summary.Race)
		assert.Equal(t, "AylaKino", summary.SeedValue)

		stored := store.seeds[summary.ShareID]
		require.NotNil(t, stored)
		assert.True(t, stored.Race)
		assert.NotEmpty(t, stored.Nonce, "race seeds record the generation nonce")

		var settings engine.Settings
		require.NoError(t, json.Unmarshal(stored.Settings, &settings))
		assert.Equal(t, "AylaKino", settings.Seed, "stored settings keep the original seed string")
	})

	t.Run("spoiler seed has no nonce", func(t *testing.T) {
		store := newFakeStore()
		service := newTestService(t, store)

		summary, err := service.Generate(context.Background(), &rando.GenerateForm{
			Seed:       "AylaKino",
			SpoilerLog: true,
		})
		require.NoError(t, err)

		assert.False(t, summary.Race)
		assert.Empty(t, store.seeds[summary.ShareID].Nonce)
	})

	t.Run("mystery seed hides seed and flag string", func(t *testing.T) {
		store := newFakeStore()
		service := newTestService(t, store)

		summary, err := service.Generate(context.Background(), &rando.GenerateForm{
			Seed:       "AylaKino",
			SpoilerLog: true,
			Mystery:    true,
		})
		require.NoError(t, err)

		assert.True(t, summary.Mystery)
		assert.Empty(t, summary.SeedValue)
		assert.Empty(t, summary.FlagString)
		assert.True(t, store.seeds[summary.ShareID].Mystery)
	})

	t.Run("share ID collisions are retried", func(t *testing.T) {
		store := newFakeStore()
		store.collisions = 2
		service := newTestService(t, store)

		summary, err := service.Generate(context.Background(), &rando.GenerateForm{
			Seed:       "AylaKino",
			SpoilerLog: true,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, summary.ShareID)
		assert.Equal(t, 1, store.created)
	})

	t.Run("exhausted retries fail", func(t *testing.T) {
		store := newFakeStore()
		store.collisions = createRetries
		service := newTestService(t, store)

		_, err := service.Generate(context.Background(), &rando.GenerateForm{
			Seed:       "AylaKino",
			SpoilerLog: true,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.GetType(err))
	})
}

func TestServiceClone(t *testing.T) {
	t.Run("clone gets a fresh seed string", func(t *testing.T) {
		store := newFakeStore()
		service := newTestService(t, store)

		source, err := service.Generate(context.Background(), &rando.GenerateForm{
			Seed:       "AylaKino",
			SpoilerLog: true,
		})
		require.NoError(t, err)

		clone, err := service.Clone(context.Background(), source.ShareID, true)
		require.NoError(t, err)

		assert.NotEqual(t, source.ShareID, clone.ShareID)
		assert.NotEqual(t, "AylaKino", clone.SeedValue)
	})

	t.Run("mystery seeds refuse cloning with a validation error", func(t *testing.T) {
		store := newFakeStore()
		service := newTestService(t, store)

		source, err := service.Generate(context.Background(), &rando.GenerateForm{
			Seed:       "AylaKino",
			SpoilerLog: true,
			Mystery:    true,
		})
		require.NoError(t, err)

		_, err = service.Clone(context.Background(), source.ShareID, true)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
	})

	t.Run("unknown share ID is not found", func(t *testing.T) {
		service := newTestService(t, newFakeStore())

		_, err := service.Clone(context.Background(), "missing", true)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
	})
}

func TestServiceSpoilersRefuseRaceSeeds(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	race, err := service.Generate(context.Background(), &rando.GenerateForm{
		Seed:       "AylaKino",
		SpoilerLog: false,
	})
	require.NoError(t, err)

	t.Run("text spoilers are forbidden", func(t *testing.T) {
		_, err := service.SpoilerText(context.Background(), race.ShareID)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, apperrors.GetType(err))
	})

	t.Run("json spoilers are forbidden", func(t *testing.T) {
		_, err := service.SpoilerJSON(context.Background(), race.ShareID)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, apperrors.GetType(err))
	})

	t.Run("web spoilers are forbidden", func(t *testing.T) {
		_, err := service.WebSpoilers(context.Background(), race.ShareID)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, apperrors.GetType(err))
	})
}

func TestServiceSpoilersForSpoilerSeeds(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	open, err := service.Generate(context.Background(), &rando.GenerateForm{
		Seed:       "AylaKino",
		SpoilerLog: true,
	})
	require.NoError(t, err)

	text, err := service.SpoilerText(context.Background(), open.ShareID)
	require.NoError(t, err)
	assert.Equal(t, "spoiler log\n", text)

	raw, err := service.SpoilerJSON(context.Background(), open.ShareID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"spoilers":true}`, raw)

	web, err := service.WebSpoilers(context.Background(), open.ShareID)
	require.NoError(t, err)
	require.Len(t, web.Bosses, 1)
	assert.Equal(t, "Zenan Bridge", web.Bosses[0].Location)
}

func TestServiceShareDetails(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	open, err := service.Generate(context.Background(), &rando.GenerateForm{
		Seed:       "AylaKino",
		SpoilerLog: true,
	})
	require.NoError(t, err)

	details, err := service.ShareDetails(context.Background(), open.ShareID)
	require.NoError(t, err)
	assert.Equal(t, open.ShareID, details.ShareID)
	assert.Contains(t, details.Details, "Seed: AylaKino")
}

func TestServiceDelete(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	open, err := service.Generate(context.Background(), &rando.GenerateForm{
		Seed:       "AylaKino",
		SpoilerLog: true,
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), open.ShareID))

	err = service.Delete(context.Background(), open.ShareID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func TestServiceStats(t *testing.T) {
	store := newFakeStore()
	service := newTestService(t, store)

	for _, seed := range []string{"AylaKino", "FrogCyrus"} {
		_, err := service.Generate(context.Background(), &rando.GenerateForm{
			Seed:       seed,
			SpoilerLog: true,
		})
		require.NoError(t, err)
	}

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSeeds)
	assert.Len(t, stats.Recent, 2)
}

package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"ctjot-server/internal/engine"
	"ctjot-server/internal/rando"
	apperrors "ctjot-server/internal/shared/errors"
)

// randoVersion tags stored seeds with the engine release they were
// generated against.
const randoVersion = "3.2.0"

// createRetries bounds share ID collision retries.
const createRetries = 5

// Store is the persistence surface the service depends on;
// *Repository is the postgres implementation.
type Store interface {
	Create(ctx context.Context, seed *Seed) (*Seed, error)
	GetByShareID(ctx context.Context, shareID string) (*Seed, error)
	Delete(ctx context.Context, shareID string) error
	Count(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]Seed, error)
}

type Service struct {
	repo    Store
	adapter *rando.Adapter
	cache   *SpoilerCache
	logger  *slog.Logger
}

func NewService(repo Store, adapter *rando.Adapter, cache *SpoilerCache, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		adapter: adapter,
		cache:   cache,
		logger:  logger,
	}
}

// Generate creates a new seed from a generation form, stores it, and
// returns its public summary.
func (s *Service) Generate(ctx context.Context, form *rando.GenerateForm) (*Summary, error) {
	logger := s.logger.With("component", "seed_service", "operation", "generate")
	logger.Info("Generating new seed", "spoiler_log", form.SpoilerLog, "mystery", form.Mystery)

	settings, config, nonce, err := s.adapter.ConfigureSeedFromForm(ctx, form)
	if err != nil {
		return nil, err
	}

	stored, err := s.store(ctx, settings, config, !form.SpoilerLog, nonce)
	if err != nil {
		return nil, err
	}

	logger.Info("Seed generated and stored", "share_id", stored.ShareID)
	summary := stored.summary()
	return &summary, nil
}

// Clone generates a fresh seed from an existing seed's settings. The
// clone gets a new seed string; mystery seeds cannot be cloned.
func (s *Service) Clone(ctx context.Context, shareID string, spoilerLog bool) (*Summary, error) {
	logger := s.logger.With("component", "seed_service", "operation", "clone", "share_id", shareID)
	logger.Info("Cloning seed", "spoiler_log", spoilerLog)

	source, err := s.load(ctx, shareID)
	if err != nil {
		return nil, err
	}

	var settings engine.Settings
	if err := json.Unmarshal(source.Settings, &settings); err != nil {
		return nil, apperrors.WrapInternal("failed to decode stored settings", err)
	}

	isRace := !spoilerLog
	config, nonce, err := s.adapter.ConfigureSeedFromSettings(ctx, &settings, isRace)
	if err != nil {
		if errors.Is(err, rando.ErrMysterySeedClone) {
			return nil, apperrors.Validation(err.Error())
		}
		return nil, err
	}

	stored, err := s.store(ctx, &settings, config, isRace, nonce)
	if err != nil {
		return nil, err
	}

	logger.Info("Seed cloned", "source_share_id", shareID, "share_id", stored.ShareID)
	summary := stored.summary()
	return &summary, nil
}

// PatchROM applies a stored seed to the player's uploaded ROM with
// their cosmetic choices and returns the download file name and the
// patched image.
func (s *Service) PatchROM(ctx context.Context, romData []byte, form *rando.RomForm) (string, []byte, error) {
	logger := s.logger.With("component", "seed_service", "operation", "patch_rom", "share_id", form.ShareID)
	logger.Info("Patching uploaded ROM", "upload_bytes", len(romData))

	stored, err := s.load(ctx, form.ShareID)
	if err != nil {
		return "", nil, err
	}

	rom, err := rando.NormalizeROM(romData)
	if err != nil {
		return "", nil, err
	}

	var settings engine.Settings
	if err := json.Unmarshal(stored.Settings, &settings); err != nil {
		return "", nil, apperrors.WrapInternal("failed to decode stored settings", err)
	}
	var config engine.Config
	if err := json.Unmarshal(stored.Config, &config); err != nil {
		return "", nil, apperrors.WrapInternal("failed to decode stored config", err)
	}

	s.adapter.ApplyROMForm(&settings, form)

	patched, err := s.adapter.GenerateROM(ctx, &settings, &config, rom)
	if err != nil {
		return "", nil, err
	}

	name := s.adapter.ROMName(&settings, stored.ShareID)
	logger.Info("ROM patched", "rom_name", name, "rom_bytes", len(patched))
	return name, patched, nil
}

// ShareDetails returns the share page payload for a seed.
func (s *Service) ShareDetails(ctx context.Context, shareID string) (*ShareDetails, error) {
	stored, err := s.load(ctx, shareID)
	if err != nil {
		return nil, err
	}

	details, ok := s.cache.Get(ctx, shareID, cacheKindShare)
	if !ok {
		var settings engine.Settings
		if err := json.Unmarshal(stored.Settings, &settings); err != nil {
			return nil, apperrors.WrapInternal("failed to decode stored settings", err)
		}

		details, err = s.adapter.ShareDetails(ctx, &settings)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, shareID, cacheKindShare, details)
	}

	return &ShareDetails{
		Summary: stored.summary(),
		Details: details,
	}, nil
}

// SpoilerText returns the full text spoiler log for a non-race seed.
func (s *Service) SpoilerText(ctx context.Context, shareID string) (string, error) {
	return s.spoilerArtifact(ctx, shareID, cacheKindText, s.adapter.SpoilerLog)
}

// SpoilerJSON returns the machine-readable spoiler log for a non-race
// seed.
func (s *Service) SpoilerJSON(ctx context.Context, shareID string) (string, error) {
	return s.spoilerArtifact(ctx, shareID, cacheKindJSON, s.adapter.JSONSpoilerLog)
}

// WebSpoilers returns the share page spoiler summary for a non-race
// seed. This is a pure walk over the stored config, so it is never
// cached.
func (s *Service) WebSpoilers(ctx context.Context, shareID string) (*rando.WebSpoilers, error) {
	stored, err := s.load(ctx, shareID)
	if err != nil {
		return nil, err
	}

	if stored.Race {
		return nil, apperrors.Forbidden("spoilers are not available for race seeds")
	}

	var config engine.Config
	if err := json.Unmarshal(stored.Config, &config); err != nil {
		return nil, apperrors.WrapInternal("failed to decode stored config", err)
	}

	return s.adapter.WebSpoilerLog(&config), nil
}

// Delete removes a seed and its cached artifacts.
func (s *Service) Delete(ctx context.Context, shareID string) error {
	logger := s.logger.With("component", "seed_service", "operation", "delete", "share_id", shareID)

	if err := s.repo.Delete(ctx, shareID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFoundf("seed %s not found", shareID)
		}
		return apperrors.WrapInternal("failed to delete seed", err)
	}

	s.cache.Invalidate(ctx, shareID)
	logger.Info("Seed deleted")
	return nil
}

// Stats returns seed counts and the most recent seeds for the admin
// dashboard.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to count seeds", err)
	}

	recent, err := s.repo.ListRecent(ctx, 10)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to list recent seeds", err)
	}

	stats := &Stats{
		TotalSeeds: count,
		Recent:     make([]Summary, 0, len(recent)),
	}
	for i := range recent {
		stats.Recent = append(stats.Recent, recent[i].summary())
	}

	return stats, nil
}

// spoilerArtifact loads a seed, refuses race seeds, and returns the
// requested rendered artifact through the cache.
func (s *Service) spoilerArtifact(ctx context.Context, shareID, kind string,
	render func(context.Context, *engine.Settings, *engine.Config) (string, error)) (string, error) {

	stored, err := s.load(ctx, shareID)
	if err != nil {
		return "", err
	}

	if stored.Race {
		return "", apperrors.Forbidden("spoiler logs are not available for race seeds")
	}

	if cached, ok := s.cache.Get(ctx, shareID, kind); ok {
		return cached, nil
	}

	var settings engine.Settings
	if err := json.Unmarshal(stored.Settings, &settings); err != nil {
		return "", apperrors.WrapInternal("failed to decode stored settings", err)
	}
	var config engine.Config
	if err := json.Unmarshal(stored.Config, &config); err != nil {
		return "", apperrors.WrapInternal("failed to decode stored config", err)
	}

	artifact, err := render(ctx, &settings, &config)
	if err != nil {
		return "", err
	}

	s.cache.Set(ctx, shareID, kind, artifact)
	return artifact, nil
}

// load fetches a seed row and maps missing rows to not-found errors.
func (s *Service) load(ctx context.Context, shareID string) (*Seed, error) {
	stored, err := s.repo.GetByShareID(ctx, shareID)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to load seed", err)
	}
	if stored == nil {
		return nil, apperrors.NotFoundf("seed %s not found", shareID)
	}
	return stored, nil
}

// store persists a freshly generated seed, retrying share ID
// collisions with new identifiers.
func (s *Service) store(ctx context.Context, settings *engine.Settings, config *engine.Config, race bool, nonce string) (*Seed, error) {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to encode settings", err)
	}
	configJSON, err := json.Marshal(config)
	if err != nil {
		return nil, apperrors.WrapInternal("failed to encode config", err)
	}

	mystery := settings.GameFlags.Has(engine.FlagMystery)

	for attempt := 0; attempt < createRetries; attempt++ {
		shareID, err := NewShareID()
		if err != nil {
			return nil, apperrors.WrapInternal("failed to generate share ID", err)
		}

		stored, err := s.repo.Create(ctx, &Seed{
			ShareID:    shareID,
			SeedValue:  settings.Seed,
			FlagString: settings.FlagString(),
			Settings:   settingsJSON,
			Config:     configJSON,
			Race:       race,
			Mystery:    mystery,
			Nonce:      nonce,
			Version:    randoVersion,
		})
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, apperrors.WrapInternal("failed to store seed", err)
		}
		return stored, nil
	}

	return nil, apperrors.WrapInternal("failed to store seed", errors.New("share ID collisions exhausted retries"))
}

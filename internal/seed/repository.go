package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
)

type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing seed repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Create(ctx context.Context, seed *Seed) (*Seed, error) {
	logger := r.logger.With(
		"component", "seed_repository",
		"operation", "create",
		"share_id", seed.ShareID,
		"race", seed.Race,
		"mystery", seed.Mystery,
	)
	logger.Info("Storing generated seed")

	query := `
		INSERT INTO seeds (share_id, seed_value, flag_string, settings, config, race, mystery, nonce, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		seed.ShareID,
		seed.SeedValue,
		seed.FlagString,
		seed.Settings,
		seed.Config,
		seed.Race,
		seed.Mystery,
		seed.Nonce,
		seed.Version,
	).Scan(&seed.ID, &seed.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			logger.Warn("Share ID collision", "error", err)
			return nil, err
		}
		logger.Error("Failed to store seed", "error", err)
		return nil, fmt.Errorf("failed to store seed: %w", err)
	}

	logger.Info("Seed stored successfully", "seed_id", seed.ID)
	return seed, nil
}

func (r *Repository) GetByShareID(ctx context.Context, shareID string) (*Seed, error) {
	logger := slog.With("component", "seed_repository", "operation", "get_by_share_id", "share_id", shareID)
	logger.Debug("Getting seed by share ID")

	query := `
		SELECT id, share_id, seed_value, flag_string, settings, config, race, mystery, nonce, version, created_at
		FROM seeds
		WHERE share_id = $1
	`

	var seed Seed
	err := r.db.QueryRowContext(ctx, query, shareID).Scan(
		&seed.ID,
		&seed.ShareID,
		&seed.SeedValue,
		&seed.FlagString,
		&seed.Settings,
		&seed.Config,
		&seed.Race,
		&seed.Mystery,
		&seed.Nonce,
		&seed.Version,
		&seed.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Debug("Seed not found")
			return nil, nil
		}
		logger.Error("Database error getting seed", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	logger.Debug("Seed retrieved", "race", seed.Race, "mystery", seed.Mystery)
	return &seed, nil
}

func (r *Repository) Delete(ctx context.Context, shareID string) error {
	logger := slog.With("component", "seed_repository", "operation", "delete", "share_id", shareID)
	logger.Info("Deleting seed")

	query := `DELETE FROM seeds WHERE share_id = $1`
	result, err := r.db.ExecContext(ctx, query, shareID)
	if err != nil {
		logger.Error("Failed to delete seed", "error", err)
		return fmt.Errorf("failed to delete seed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("Failed to get rows affected", "error", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		logger.Warn("Seed not found for deletion")
		return sql.ErrNoRows
	}

	logger.Info("Seed deleted successfully")
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	logger := slog.With("component", "seed_repository", "operation", "count")
	logger.Debug("Counting stored seeds")

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seeds`).Scan(&count)
	if err != nil {
		logger.Error("Failed to count seeds", "error", err)
		return 0, fmt.Errorf("failed to count seeds: %w", err)
	}

	logger.Debug("Seeds counted", "count", count)
	return count, nil
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Seed, error) {
	logger := slog.With("component", "seed_repository", "operation", "list_recent", "limit", limit)
	logger.Debug("Listing recent seeds")

	query := `
		SELECT id, share_id, seed_value, flag_string, race, mystery, version, created_at
		FROM seeds
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		logger.Error("Failed to query recent seeds", "error", err)
		return nil, fmt.Errorf("failed to query recent seeds: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var seeds []Seed
	for rows.Next() {
		var seed Seed
		err := rows.Scan(
			&seed.ID,
			&seed.ShareID,
			&seed.SeedValue,
			&seed.FlagString,
			&seed.Race,
			&seed.Mystery,
			&seed.Version,
			&seed.CreatedAt,
		)
		if err != nil {
			logger.Error("Failed to scan seed row", "error", err)
			return nil, fmt.Errorf("failed to scan seed: %w", err)
		}
		seeds = append(seeds, seed)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating seeds: %w", err)
	}

	logger.Debug("Recent seeds retrieved", "count", len(seeds))
	return seeds, nil
}

// isUniqueViolation reports whether err is a postgres unique
// constraint violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

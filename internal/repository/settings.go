package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"celebration-bot/internal/model"
)

// SettingsRepository handles announcement and game settings persistence.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository instance.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// SetAnnounce saves the announcement chat and time for one kind.
func (r *SettingsRepository) SetAnnounce(ctx context.Context, kind model.AnnounceKind, chatID int64, announceTime string) error {
	const query = `
		INSERT INTO announce_settings (kind, chat_id, announce_time, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (kind) DO UPDATE
		SET chat_id = EXCLUDED.chat_id, announce_time = EXCLUDED.announce_time, updated_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, string(kind), chatID, announceTime); err != nil {
		return fmt.Errorf("failed to save %s settings: %w", kind, err)
	}
	return nil
}

// GetAnnounce retrieves the announcement settings for one kind. Returns
// ErrNotFound if the kind has not been configured.
func (r *SettingsRepository) GetAnnounce(ctx context.Context, kind model.AnnounceKind) (*model.AnnounceSettings, error) {
	const query = `
		SELECT kind, chat_id, announce_time, updated_at
		FROM announce_settings
		WHERE kind = $1
	`
	var (
		s       model.AnnounceSettings
		rawKind string
	)
	err := r.pool.QueryRow(ctx, query, string(kind)).Scan(&rawKind, &s.ChatID, &s.AnnounceTime, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s settings: %w", kind, err)
	}
	s.Kind = model.AnnounceKind(rawKind)
	return &s, nil
}

// SetGamesEnabled toggles the birthday-game feature.
func (r *SettingsRepository) SetGamesEnabled(ctx context.Context, enabled bool) error {
	const query = `
		INSERT INTO game_settings (id, enabled, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, enabled); err != nil {
		return fmt.Errorf("failed to save game settings: %w", err)
	}
	return nil
}

// GamesEnabled reports whether birthday games are enabled. An unconfigured
// toggle reads as disabled.
func (r *SettingsRepository) GamesEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := r.pool.QueryRow(ctx, `SELECT enabled FROM game_settings WHERE id = 1`).Scan(&enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get game settings: %w", err)
	}
	return enabled, nil
}

// Reset wipes all saved birthdays, anniversaries, and settings.
func (r *SettingsRepository) Reset(ctx context.Context) error {
	const query = `
		TRUNCATE birthdays, anniversaries, announce_settings, game_settings
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	return nil
}

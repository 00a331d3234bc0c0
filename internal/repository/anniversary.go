package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"celebration-bot/internal/model"
)

// AnniversaryRepository handles work-anniversary persistence.
type AnniversaryRepository struct {
	pool *pgxpool.Pool
}

// NewAnniversaryRepository creates a new AnniversaryRepository instance.
func NewAnniversaryRepository(pool *pgxpool.Pool) *AnniversaryRepository {
	return &AnniversaryRepository{pool: pool}
}

// Upsert saves or replaces a user's work start date.
func (r *AnniversaryRepository) Upsert(ctx context.Context, userID int64, startDate time.Time) error {
	const query = `
		INSERT INTO anniversaries (user_id, start_date, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET start_date = EXCLUDED.start_date
	`
	if _, err := r.pool.Exec(ctx, query, userID, startDate); err != nil {
		return fmt.Errorf("failed to upsert anniversary: %w", err)
	}
	return nil
}

// Get retrieves a user's anniversary. Returns ErrNotFound if absent.
func (r *AnniversaryRepository) Get(ctx context.Context, userID int64) (*model.Anniversary, error) {
	const query = `
		SELECT user_id, start_date, created_at
		FROM anniversaries
		WHERE user_id = $1
	`
	var a model.Anniversary
	err := r.pool.QueryRow(ctx, query, userID).Scan(&a.UserID, &a.StartDate, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get anniversary: %w", err)
	}
	return &a, nil
}

// ListByMonthDay retrieves all anniversaries whose start date falls on the
// given month and day, regardless of year.
func (r *AnniversaryRepository) ListByMonthDay(ctx context.Context, month, day int) ([]model.Anniversary, error) {
	const query = `
		SELECT user_id, start_date, created_at
		FROM anniversaries
		WHERE EXTRACT(MONTH FROM start_date) = $1 AND EXTRACT(DAY FROM start_date) = $2
		ORDER BY user_id
	`
	rows, err := r.pool.Query(ctx, query, month, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list anniversaries: %w", err)
	}
	defer rows.Close()

	var anniversaries []model.Anniversary
	for rows.Next() {
		var a model.Anniversary
		if err := rows.Scan(&a.UserID, &a.StartDate, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan anniversary row: %w", err)
		}
		anniversaries = append(anniversaries, a)
	}
	return anniversaries, rows.Err()
}

// List retrieves all saved anniversaries ordered by start date.
func (r *AnniversaryRepository) List(ctx context.Context) ([]model.Anniversary, error) {
	const query = `
		SELECT user_id, start_date, created_at
		FROM anniversaries
		ORDER BY start_date, user_id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list anniversaries: %w", err)
	}
	defer rows.Close()

	var anniversaries []model.Anniversary
	for rows.Next() {
		var a model.Anniversary
		if err := rows.Scan(&a.UserID, &a.StartDate, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan anniversary row: %w", err)
		}
		anniversaries = append(anniversaries, a)
	}
	return anniversaries, rows.Err()
}

// Delete removes a user's anniversary. Returns ErrNotFound if absent.
func (r *AnniversaryRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM anniversaries WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete anniversary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

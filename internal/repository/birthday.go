// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"celebration-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

// BirthdayRepository handles birthday persistence.
type BirthdayRepository struct {
	pool *pgxpool.Pool
}

// NewBirthdayRepository creates a new BirthdayRepository instance.
func NewBirthdayRepository(pool *pgxpool.Pool) *BirthdayRepository {
	return &BirthdayRepository{pool: pool}
}

// Create saves a user's birthday. Returns ErrAlreadyExists if the user
// already has one; updates go through Upsert.
func (r *BirthdayRepository) Create(ctx context.Context, userID int64, monthDay string) error {
	const query = `
		INSERT INTO birthdays (user_id, month_day, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query, userID, monthDay)
	if err != nil {
		return fmt.Errorf("failed to create birthday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// Upsert saves or replaces a user's birthday (admin path).
func (r *BirthdayRepository) Upsert(ctx context.Context, userID int64, monthDay string) error {
	const query = `
		INSERT INTO birthdays (user_id, month_day, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET month_day = EXCLUDED.month_day
	`
	if _, err := r.pool.Exec(ctx, query, userID, monthDay); err != nil {
		return fmt.Errorf("failed to upsert birthday: %w", err)
	}
	return nil
}

// Get retrieves a user's birthday. Returns ErrNotFound if absent.
func (r *BirthdayRepository) Get(ctx context.Context, userID int64) (*model.Birthday, error) {
	const query = `
		SELECT user_id, month_day, created_at
		FROM birthdays
		WHERE user_id = $1
	`
	var b model.Birthday
	err := r.pool.QueryRow(ctx, query, userID).Scan(&b.UserID, &b.MonthDay, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get birthday: %w", err)
	}
	return &b, nil
}

// ListByMonthDay retrieves the user IDs whose birthday falls on the given
// "MM-DD" date.
func (r *BirthdayRepository) ListByMonthDay(ctx context.Context, monthDay string) ([]int64, error) {
	const query = `
		SELECT user_id
		FROM birthdays
		WHERE month_day = $1
		ORDER BY user_id
	`
	rows, err := r.pool.Query(ctx, query, monthDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan birthday row: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

// List retrieves all saved birthdays ordered by date.
func (r *BirthdayRepository) List(ctx context.Context) ([]model.Birthday, error) {
	const query = `
		SELECT user_id, month_day, created_at
		FROM birthdays
		ORDER BY month_day, user_id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}
	defer rows.Close()

	var birthdays []model.Birthday
	for rows.Next() {
		var b model.Birthday
		if err := rows.Scan(&b.UserID, &b.MonthDay, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan birthday row: %w", err)
		}
		birthdays = append(birthdays, b)
	}
	return birthdays, rows.Err()
}

// Delete removes a user's birthday. Returns ErrNotFound if absent.
func (r *BirthdayRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM birthdays WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete birthday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

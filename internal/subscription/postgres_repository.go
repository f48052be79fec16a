package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves the subscription for (userID, repository).
func (r *PostgresRepository) Get(ctx context.Context, userID, repository string) (*Subscription, error) {
	query := `
		SELECT github_user_id, repository, plan, status, created_at, updated_at
		FROM subscriptions
		WHERE github_user_id = $1 AND repository = $2`

	var sub Subscription
	err := r.pool.QueryRow(ctx, query, userID, repository).Scan(
		&sub.UserID, &sub.Repository, &sub.Plan, &sub.Status,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying subscription: %w", err)
	}

	return &sub, nil
}

// Upsert inserts the subscription or replaces the existing row for its key.
// The single INSERT ... ON CONFLICT statement keeps plan and status writes
// atomic under concurrent calls for the same key.
func (r *PostgresRepository) Upsert(ctx context.Context, sub *Subscription) error {
	query := `
		INSERT INTO subscriptions (github_user_id, repository, plan, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (github_user_id, repository)
		DO UPDATE SET plan = EXCLUDED.plan, status = EXCLUDED.status, updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		sub.UserID,
		sub.Repository,
		sub.Plan,
		sub.Status,
	).Scan(&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting subscription: %w", err)
	}

	return nil
}

// SetStatus updates the status of an existing subscription. Cancellations
// for unknown keys are ignored rather than creating a record.
func (r *PostgresRepository) SetStatus(ctx context.Context, userID, repository string, status Status) error {
	query := `
		UPDATE subscriptions
		SET status = $1, updated_at = NOW()
		WHERE github_user_id = $2 AND repository = $3`

	if _, err := r.pool.Exec(ctx, query, status, userID, repository); err != nil {
		return fmt.Errorf("updating subscription status: %w", err)
	}

	return nil
}

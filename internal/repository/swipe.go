package repository

import (
	"context"
	"errors"
	"fmt"

	"binder-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SwipeRepository handles database operations for swipes
type SwipeRepository struct {
	db *pgxpool.Pool
}

// NewSwipeRepository creates a new swipe repository
func NewSwipeRepository(db *pgxpool.Pool) *SwipeRepository {
	return &SwipeRepository{db: db}
}

// Upsert inserts the swipe or, if a row for (startup_id, actor_id) already
// exists, overwrites its direction and timestamp. The uniqueness invariant
// lives in the primary key, not in application locking.
func (r *SwipeRepository) Upsert(ctx context.Context, swipe *models.Swipe) error {
	query := `
		INSERT INTO swipes (startup_id, actor_id, direction, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (startup_id, actor_id)
		DO UPDATE SET direction = EXCLUDED.direction, created_at = EXCLUDED.created_at
	`
	_, err := r.db.Exec(ctx, query, swipe.StartupID, swipe.ActorID, swipe.Direction, swipe.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("startup %s: %w", swipe.StartupID, ErrNotFound)
		}
		return fmt.Errorf("failed to upsert swipe: %w", err)
	}
	return nil
}

// DecidedStartupIDs retrieves every startup id the actor has swiped on, in
// one query. The set is intentionally unpaginated: a silently omitted
// exclusion would let a decided startup resurface in the deck.
func (r *SwipeRepository) DecidedStartupIDs(ctx context.Context, actorID string) ([]string, error) {
	query := `SELECT startup_id FROM swipes WHERE actor_id = $1`

	rows, err := r.db.Query(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decided startups: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan startup id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read decided startups: %w", err)
	}
	return ids, nil
}

// CountByStartupIDs aggregates swipe counts for the given startup ids in one
// grouped query. Startups without swipes produce no row; the caller is
// responsible for zero-filling.
func (r *SwipeRepository) CountByStartupIDs(ctx context.Context, startupIDs []string) (map[string]models.SwipeStats, error) {
	query := `
		SELECT startup_id,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE direction = $2)
		FROM swipes
		WHERE startup_id = ANY($1)
		GROUP BY startup_id
	`
	rows, err := r.db.Query(ctx, query, startupIDs, models.DirectionPositive)
	if err != nil {
		return nil, fmt.Errorf("failed to count swipes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]models.SwipeStats)
	for rows.Next() {
		var id string
		var stats models.SwipeStats
		if err := rows.Scan(&id, &stats.Total, &stats.Positive); err != nil {
			return nil, fmt.Errorf("failed to scan swipe counts: %w", err)
		}
		counts[id] = stats
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read swipe counts: %w", err)
	}
	return counts, nil
}

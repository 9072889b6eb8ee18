package repository

import (
	"context"
	"fmt"

	"binder-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SavedRepository handles database operations for the saved shortlist
type SavedRepository struct {
	db *pgxpool.Pool
}

// NewSavedRepository creates a new saved repository
func NewSavedRepository(db *pgxpool.Pool) *SavedRepository {
	return &SavedRepository{db: db}
}

// Upsert inserts the saved entry if it does not exist. An existing entry for
// (actor_id, startup_id) keeps its original timestamp.
func (r *SavedRepository) Upsert(ctx context.Context, entry *models.SavedStartup) error {
	query := `
		INSERT INTO saved_startups (actor_id, startup_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (actor_id, startup_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, entry.ActorID, entry.StartupID, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert saved startup: %w", err)
	}
	return nil
}

// ListStartupsByActor retrieves the startups an actor has saved, most
// recently saved first.
func (r *SavedRepository) ListStartupsByActor(ctx context.Context, actorID string) ([]*models.Startup, error) {
	query := `
		SELECT s.id, s.name, s.image_key, s.description,
		       s.stage_tags, s.size_tags, s.category_tags, s.quality_score, s.created_at
		FROM saved_startups sv
		JOIN startups s ON s.id = sv.startup_id
		WHERE sv.actor_id = $1
		ORDER BY sv.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved startups: %w", err)
	}
	defer rows.Close()

	return scanStartups(rows)
}

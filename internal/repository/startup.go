package repository

import (
	"context"
	"fmt"

	"binder-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StartupRepository handles database reads for startups. Startups are
// created by an external registration flow; this service never writes them.
type StartupRepository struct {
	db *pgxpool.Pool
}

// NewStartupRepository creates a new startup repository
func NewStartupRepository(db *pgxpool.Pool) *StartupRepository {
	return &StartupRepository{db: db}
}

const startupColumns = `id, name, image_key, description, stage_tags, size_tags, category_tags, quality_score, created_at`

// ListNewest retrieves up to limit startups, newest first, optionally
// restricted to a category tag and excluding the given ids. An empty
// category means no category filter.
func (r *StartupRepository) ListNewest(ctx context.Context, category string, excluded []string, limit int) ([]*models.Startup, error) {
	query := `
		SELECT ` + startupColumns + `
		FROM startups
		WHERE ($1 = '' OR $1 = ANY(category_tags))
	`
	args := []any{category}

	// Skip the exclusion clause entirely when there is nothing to exclude.
	if len(excluded) > 0 {
		query += ` AND NOT (id = ANY($2))`
		args = append(args, excluded)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}
	defer rows.Close()

	return scanStartups(rows)
}

// GetByID retrieves a startup by ID
func (r *StartupRepository) GetByID(ctx context.Context, id string) (*models.Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startups WHERE id = $1`

	var s models.Startup
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.ImageKey, &s.Description,
		&s.StageTags, &s.SizeTags, &s.CategoryTags, &s.QualityScore, &s.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("startup %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get startup: %w", err)
	}
	return &s, nil
}

func scanStartups(rows pgx.Rows) ([]*models.Startup, error) {
	startups := make([]*models.Startup, 0)
	for rows.Next() {
		var s models.Startup
		if err := rows.Scan(
			&s.ID, &s.Name, &s.ImageKey, &s.Description,
			&s.StageTags, &s.SizeTags, &s.CategoryTags, &s.QualityScore, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan startup: %w", err)
		}
		startups = append(startups, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read startups: %w", err)
	}
	return startups, nil
}

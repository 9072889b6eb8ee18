package services

import (
	"context"
	"time"

	"binder-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// SwipeWriter is the swipe access the recording service needs.
type SwipeWriter interface {
	Upsert(ctx context.Context, swipe *models.Swipe) error
}

// SavedWriter is the saved-shortlist access the recording service needs.
type SavedWriter interface {
	Upsert(ctx context.Context, entry *models.SavedStartup) error
}

// SwipeService records decisions idempotently and cascades positive
// decisions into the saved shortlist.
type SwipeService struct {
	swipes SwipeWriter
	saved  SavedWriter
}

// NewSwipeService creates a new swipe service
func NewSwipeService(swipes SwipeWriter, saved SavedWriter) *SwipeService {
	return &SwipeService{
		swipes: swipes,
		saved:  saved,
	}
}

// Record persists one decision. The upsert keyed on (startup, actor) makes a
// retried call overwrite rather than duplicate, so last write wins. On a
// positive direction the startup is also upserted into the actor's saved
// shortlist; that cascade is best-effort and never rolls back or fails the
// decision write, which is the source of truth.
func (s *SwipeService) Record(ctx context.Context, startupID, actorID string, direction models.Direction) (*models.Swipe, error) {
	if !direction.Valid() {
		return nil, ErrInvalidDirection
	}

	swipe := &models.Swipe{
		StartupID: startupID,
		ActorID:   actorID,
		Direction: direction,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.swipes.Upsert(ctx, swipe); err != nil {
		return nil, err
	}

	if direction == models.DirectionPositive {
		entry := &models.SavedStartup{
			ActorID:   actorID,
			StartupID: startupID,
			CreatedAt: swipe.CreatedAt,
		}
		if err := s.saved.Upsert(ctx, entry); err != nil {
			log.Error().
				Err(err).
				Str("actor_id", actorID).
				Str("startup_id", startupID).
				Msg("Failed to cascade swipe into saved shortlist")
		}
	}

	return swipe, nil
}

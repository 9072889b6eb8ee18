package services

import (
	"context"
	"fmt"

	"binder-backend/internal/models"
)

// SavedReader is the saved-shortlist access the saved service needs.
type SavedReader interface {
	ListStartupsByActor(ctx context.Context, actorID string) ([]*models.Startup, error)
}

// SavedService reads the shortlist the positive-swipe cascade feeds.
type SavedService struct {
	saved  SavedReader
	images ImageSigner
}

// NewSavedService creates a new saved service
func NewSavedService(saved SavedReader, images ImageSigner) *SavedService {
	return &SavedService{
		saved:  saved,
		images: images,
	}
}

// List returns the startups the actor has saved, most recently saved first.
func (s *SavedService) List(ctx context.Context, actorID string) ([]*models.Startup, error) {
	startups, err := s.saved.ListStartupsByActor(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved startups: %w", err)
	}
	attachImageURLs(ctx, s.images, startups)
	return startups, nil
}

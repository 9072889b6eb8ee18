package services

import (
	"context"
	"fmt"

	"binder-backend/internal/models"
)

// DeckSize is the fixed page size of one composed deck.
const DeckSize = 30

// CategoryAll is the wildcard category filter meaning "no filtering".
const CategoryAll = "All"

// DeckStartupStore is the startup access the deck service needs.
type DeckStartupStore interface {
	ListNewest(ctx context.Context, category string, excluded []string, limit int) ([]*models.Startup, error)
}

// DeckSwipeStore is the swipe access the deck service needs.
type DeckSwipeStore interface {
	DecidedStartupIDs(ctx context.Context, actorID string) ([]string, error)
}

// DeckService composes decks of unseen startups for an actor.
type DeckService struct {
	startups DeckStartupStore
	swipes   DeckSwipeStore
	images   ImageSigner
}

// NewDeckService creates a new deck service. The image signer may be nil, in
// which case cards carry no image URL.
func NewDeckService(startups DeckStartupStore, swipes DeckSwipeStore, images ImageSigner) *DeckService {
	return &DeckService{
		startups: startups,
		swipes:   swipes,
		images:   images,
	}
}

// Compose returns up to DeckSize startups the actor has not yet swiped on,
// newest first, optionally filtered to one category tag. An empty result
// means "nothing left to show" and is not an error. Partial failure is full
// failure: an unfiltered deck is never returned.
func (s *DeckService) Compose(ctx context.Context, actorID, category string) ([]*models.Startup, error) {
	if category == CategoryAll {
		category = ""
	}

	excluded, err := s.swipes.DecidedStartupIDs(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeckFetch, err)
	}

	deck, err := s.startups.ListNewest(ctx, category, excluded, DeckSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeckFetch, err)
	}

	attachImageURLs(ctx, s.images, deck)
	return deck, nil
}

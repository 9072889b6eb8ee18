package services

import (
	"context"
	"fmt"

	"binder-backend/internal/models"
)

// StatsSwipeStore is the swipe access the stats service needs.
type StatsSwipeStore interface {
	CountByStartupIDs(ctx context.Context, startupIDs []string) (map[string]models.SwipeStats, error)
}

// StatsService aggregates swipe counts across actors per startup.
type StatsService struct {
	swipes StatsSwipeStore
}

// NewStatsService creates a new stats service
func NewStatsService(swipes StatsSwipeStore) *StatsService {
	return &StatsService{swipes: swipes}
}

// Aggregate returns total and positive swipe counts for every requested
// startup id. Ids with zero swipes are present as {0, 0}, never absent, so
// callers need not distinguish "missing key" from "no swipes". The id set is
// bounded to one deck page.
func (s *StatsService) Aggregate(ctx context.Context, startupIDs []string) (map[string]models.SwipeStats, error) {
	if len(startupIDs) > DeckSize {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrBatchTooLarge, len(startupIDs), DeckSize)
	}

	stats := make(map[string]models.SwipeStats, len(startupIDs))
	for _, id := range startupIDs {
		stats[id] = models.SwipeStats{}
	}
	if len(startupIDs) == 0 {
		return stats, nil
	}

	counts, err := s.swipes.CountByStartupIDs(ctx, startupIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatsFetch, err)
	}
	for id, c := range counts {
		if _, requested := stats[id]; requested {
			stats[id] = c
		}
	}
	return stats, nil
}

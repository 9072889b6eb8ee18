package memory

import (
	"context"
	"fmt"
	"sync"

	"binder-backend/internal/models"
	"binder-backend/internal/repository"
)

type swipeKey struct {
	startupID string
	actorID   string
}

// SwipeStore is an in-memory swipe repository. It enforces the same
// one-row-per-(startup, actor) invariant the Postgres primary key does.
type SwipeStore struct {
	mu       sync.RWMutex
	data     map[swipeKey]*models.Swipe
	startups *StartupStore
}

// NewSwipeStore creates a new in-memory swipe store. The startup store is
// consulted to mimic the foreign-key constraint on startup_id.
func NewSwipeStore(startups *StartupStore) *SwipeStore {
	return &SwipeStore{
		data:     make(map[swipeKey]*models.Swipe),
		startups: startups,
	}
}

// Upsert mirrors SwipeRepository.Upsert.
func (s *SwipeStore) Upsert(_ context.Context, swipe *models.Swipe) error {
	if s.startups != nil && !s.startups.exists(swipe.StartupID) {
		return fmt.Errorf("startup %s: %w", swipe.StartupID, repository.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *swipe
	s.data[swipeKey{swipe.StartupID, swipe.ActorID}] = &cp
	return nil
}

// DecidedStartupIDs mirrors SwipeRepository.DecidedStartupIDs.
func (s *SwipeStore) DecidedStartupIDs(_ context.Context, actorID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for key := range s.data {
		if key.actorID == actorID {
			ids = append(ids, key.startupID)
		}
	}
	return ids, nil
}

// CountByStartupIDs mirrors SwipeRepository.CountByStartupIDs.
func (s *SwipeStore) CountByStartupIDs(_ context.Context, startupIDs []string) (map[string]models.SwipeStats, error) {
	wanted := make(map[string]struct{}, len(startupIDs))
	for _, id := range startupIDs {
		wanted[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]models.SwipeStats)
	for key, swipe := range s.data {
		if _, ok := wanted[key.startupID]; !ok {
			continue
		}
		stats := counts[key.startupID]
		stats.Total++
		if swipe.Direction == models.DirectionPositive {
			stats.Positive++
		}
		counts[key.startupID] = stats
	}
	return counts, nil
}

// Get returns the swipe for a (startup, actor) pair, if any. Test helper.
func (s *SwipeStore) Get(startupID, actorID string) (*models.Swipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	swipe, ok := s.data[swipeKey{startupID, actorID}]
	if !ok {
		return nil, false
	}
	cp := *swipe
	return &cp, true
}

// Len returns the number of stored swipe rows. Test helper.
func (s *SwipeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

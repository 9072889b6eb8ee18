package memory

import (
	"context"
	"sort"
	"sync"

	"binder-backend/internal/models"
)

type savedKey struct {
	actorID   string
	startupID string
}

// SavedStore is an in-memory saved-shortlist repository.
type SavedStore struct {
	mu       sync.RWMutex
	data     map[savedKey]*models.SavedStartup
	startups *StartupStore
}

// NewSavedStore creates a new in-memory saved store. The startup store backs
// the ListStartupsByActor join.
func NewSavedStore(startups *StartupStore) *SavedStore {
	return &SavedStore{
		data:     make(map[savedKey]*models.SavedStartup),
		startups: startups,
	}
}

// Upsert mirrors SavedRepository.Upsert: an existing entry keeps its
// original timestamp.
func (s *SavedStore) Upsert(_ context.Context, entry *models.SavedStartup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := savedKey{entry.ActorID, entry.StartupID}
	if _, exists := s.data[key]; exists {
		return nil
	}
	cp := *entry
	s.data[key] = &cp
	return nil
}

// ListStartupsByActor mirrors SavedRepository.ListStartupsByActor.
func (s *SavedStore) ListStartupsByActor(ctx context.Context, actorID string) ([]*models.Startup, error) {
	s.mu.RLock()
	entries := make([]*models.SavedStartup, 0)
	for key, e := range s.data {
		if key.actorID == actorID {
			cp := *e
			entries = append(entries, &cp)
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	startups := make([]*models.Startup, 0, len(entries))
	for _, e := range entries {
		st, err := s.startups.GetByID(ctx, e.StartupID)
		if err != nil {
			continue
		}
		startups = append(startups, st)
	}
	return startups, nil
}

// Get returns the saved entry for an (actor, startup) pair, if any. Test helper.
func (s *SavedStore) Get(actorID, startupID string) (*models.SavedStartup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[savedKey{actorID, startupID}]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

// Len returns the number of stored saved rows. Test helper.
func (s *SavedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

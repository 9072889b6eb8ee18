// Package memory provides in-memory implementations of the repository
// contracts, used by tests in place of Postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"binder-backend/internal/models"
	"binder-backend/internal/repository"
)

// StartupStore is an in-memory startup repository.
type StartupStore struct {
	mu   sync.RWMutex
	data map[string]*models.Startup
}

// NewStartupStore creates a new in-memory startup store.
func NewStartupStore() *StartupStore {
	return &StartupStore{data: make(map[string]*models.Startup)}
}

// Insert adds a startup. It exists as a fixture helper; the production
// repository is read-only because registration happens outside this service.
func (s *StartupStore) Insert(_ context.Context, startup *models.Startup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *startup
	s.data[startup.ID] = &cp
	return nil
}

// ListNewest mirrors StartupRepository.ListNewest.
func (s *StartupStore) ListNewest(_ context.Context, category string, excluded []string, limit int) ([]*models.Startup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	skip := make(map[string]struct{}, len(excluded))
	for _, id := range excluded {
		skip[id] = struct{}{}
	}

	var result []*models.Startup
	for _, st := range s.data {
		if _, ok := skip[st.ID]; ok {
			continue
		}
		if category != "" && !hasTag(st.CategoryTags, category) {
			continue
		}
		cp := *st
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	if result == nil {
		result = make([]*models.Startup, 0)
	}
	return result, nil
}

// GetByID mirrors StartupRepository.GetByID.
func (s *StartupStore) GetByID(_ context.Context, id string) (*models.Startup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("startup %s: %w", id, repository.ErrNotFound)
	}
	cp := *st
	return &cp, nil
}

func (s *StartupStore) exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[id]
	return ok
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

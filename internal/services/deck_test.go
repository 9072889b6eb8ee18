package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"binder-backend/internal/models"
	"binder-backend/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartup(name string, categories []string, createdAt time.Time) *models.Startup {
	return &models.Startup{
		ID:           uuid.New().String(),
		Name:         name,
		CategoryTags: categories,
		CreatedAt:    createdAt,
	}
}

func seedStartups(t *testing.T, store *memory.StartupStore, startups ...*models.Startup) {
	t.Helper()
	for _, st := range startups {
		require.NoError(t, store.Insert(context.Background(), st))
	}
}

type failingSwipeStore struct {
	*memory.SwipeStore
}

func (f *failingSwipeStore) DecidedStartupIDs(context.Context, string) ([]string, error) {
	return nil, errors.New("connection reset")
}

type failingStartupStore struct {
	*memory.StartupStore
}

func (f *failingStartupStore) ListNewest(context.Context, string, []string, int) ([]*models.Startup, error) {
	return nil, errors.New("connection reset")
}

func TestDeckCompose_EmptyHistoryGetsNewestFirst(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)

	base := time.Now()
	older := newStartup("older", []string{"Fintech"}, base.Add(-time.Hour))
	newer := newStartup("newer", []string{"Fintech"}, base)
	seedStartups(t, startups, older, newer)

	deck, err := NewDeckService(startups, swipes, nil).Compose(ctx, "actor-a", "")
	require.NoError(t, err)
	require.Len(t, deck, 2)
	assert.Equal(t, newer.ID, deck[0].ID)
	assert.Equal(t, older.ID, deck[1].ID)
}

func TestDeckCompose_ExcludesEveryDecidedStartup(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)
	svc := NewDeckService(startups, swipes, nil)

	decided := newStartup("decided", []string{"Fintech"}, time.Now())
	pending := newStartup("pending", []string{"Fintech"}, time.Now())
	seedStartups(t, startups, decided, pending)

	for _, direction := range []models.Direction{models.DirectionNegative, models.DirectionPositive} {
		require.NoError(t, swipes.Upsert(ctx, &models.Swipe{
			StartupID: decided.ID,
			ActorID:   "actor-a",
			Direction: direction,
			CreatedAt: time.Now(),
		}))

		for _, category := range []string{"", "All", "Fintech"} {
			deck, err := svc.Compose(ctx, "actor-a", category)
			require.NoError(t, err)
			require.Len(t, deck, 1, "category %q", category)
			assert.Equal(t, pending.ID, deck[0].ID)
		}
	}

	// Another actor's deck is unaffected.
	deck, err := svc.Compose(ctx, "actor-b", "")
	require.NoError(t, err)
	assert.Len(t, deck, 2)
}

func TestDeckCompose_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)

	fintech := newStartup("fintech", []string{"Fintech", "B2B"}, time.Now())
	health := newStartup("health", []string{"Healthcare"}, time.Now())
	seedStartups(t, startups, fintech, health)

	svc := NewDeckService(startups, swipes, nil)

	deck, err := svc.Compose(ctx, "actor-a", "Fintech")
	require.NoError(t, err)
	require.Len(t, deck, 1)
	assert.Equal(t, fintech.ID, deck[0].ID)

	deck, err = svc.Compose(ctx, "actor-a", "All")
	require.NoError(t, err)
	assert.Len(t, deck, 2)
}

func TestDeckCompose_CappedAtDeckSize(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)

	base := time.Now()
	for i := 0; i < DeckSize+15; i++ {
		seedStartups(t, startups, newStartup(
			fmt.Sprintf("startup-%d", i),
			[]string{"Fintech"},
			base.Add(time.Duration(i)*time.Second),
		))
	}

	deck, err := NewDeckService(startups, swipes, nil).Compose(ctx, "actor-a", "")
	require.NoError(t, err)
	assert.Len(t, deck, DeckSize)
}

func TestDeckCompose_FullyDecidedDeckIsEmptyNotError(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)

	only := newStartup("only", nil, time.Now())
	seedStartups(t, startups, only)
	require.NoError(t, swipes.Upsert(ctx, &models.Swipe{
		StartupID: only.ID,
		ActorID:   "actor-a",
		Direction: models.DirectionNegative,
		CreatedAt: time.Now(),
	}))

	deck, err := NewDeckService(startups, swipes, nil).Compose(ctx, "actor-a", "")
	require.NoError(t, err)
	assert.Empty(t, deck)
	assert.NotNil(t, deck)
}

func TestDeckCompose_PartialFailureIsFullFailure(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)
	seedStartups(t, startups, newStartup("any", nil, time.Now()))

	// Exclusion fetch fails: no deck, never an unfiltered one.
	deck, err := NewDeckService(startups, &failingSwipeStore{swipes}, nil).Compose(ctx, "actor-a", "")
	require.ErrorIs(t, err, ErrDeckFetch)
	assert.Nil(t, deck)

	// Candidate fetch fails after a successful exclusion fetch.
	deck, err = NewDeckService(&failingStartupStore{startups}, swipes, nil).Compose(ctx, "actor-a", "")
	require.ErrorIs(t, err, ErrDeckFetch)
	assert.Nil(t, deck)
}

type staticSigner struct{}

func (staticSigner) SignImageURL(_ context.Context, key string) (string, error) {
	return "https://img.example.com/" + key, nil
}

func TestDeckCompose_AttachesImageURLs(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)

	withImage := newStartup("with-image", nil, time.Now())
	withImage.ImageKey = "logos/with-image.png"
	bare := newStartup("bare", nil, time.Now().Add(-time.Minute))
	seedStartups(t, startups, withImage, bare)

	deck, err := NewDeckService(startups, swipes, staticSigner{}).Compose(ctx, "actor-a", "")
	require.NoError(t, err)
	require.Len(t, deck, 2)
	assert.Equal(t, "https://img.example.com/logos/with-image.png", deck[0].ImageURL)
	assert.Empty(t, deck[1].ImageURL)
}

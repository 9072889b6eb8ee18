package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"binder-backend/internal/models"
	"binder-backend/internal/repository"
	"binder-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSavedStore struct{}

func (failingSavedStore) Upsert(context.Context, *models.SavedStartup) error {
	return errors.New("connection reset")
}

func TestSwipeRecord_RejectsInvalidDirection(t *testing.T) {
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)
	saved := memory.NewSavedStore(startups)
	svc := NewSwipeService(swipes, saved)

	_, err := svc.Record(context.Background(), "startup-x", "actor-a", models.Direction("maybe"))
	require.ErrorIs(t, err, ErrInvalidDirection)
	assert.Zero(t, swipes.Len(), "no write may happen on invalid direction")
}

func TestSwipeRecord_PositiveCascadesIntoSaved(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)
	saved := memory.NewSavedStore(startups)

	st := newStartup("x", []string{"Fintech"}, time.Now())
	seedStartups(t, startups, st)

	swipe, err := NewSwipeService(swipes, saved).Record(ctx, st.ID, "actor-a", models.DirectionPositive)
	require.NoError(t, err)
	assert.Equal(t, st.ID, swipe.StartupID)
	assert.Equal(t, "actor-a", swipe.ActorID)
	assert.Equal(t, models.DirectionPositive, swipe.Direction)
	assert.False(t, swipe.CreatedAt.IsZero())

	_, ok := saved.Get("actor-a", st.ID)
	assert.True(t, ok, "positive swipe must cascade into saved shortlist")
}

func TestSwipeRecord_NegativeDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)
	saved := memory.NewSavedStore(startups)

	st := newStartup("x", nil, time.Now())
	seedStartups(t, startups, st)

	_, err := NewSwipeService(swipes, saved).Record(ctx, st.ID, "actor-a", models.DirectionNegative)
	require.NoError(t, err)
	assert.Zero(t, saved.Len())
}

func TestSwipeRecord_Idempotent(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)
	saved := memory.NewSavedStore(startups)
	svc := NewSwipeService(swipes, saved)

	st := newStartup("x", nil, time.Now())
	seedStartups(t, startups, st)

	_, err := svc.Record(ctx, st.ID, "actor-a", models.DirectionPositive)
	require.NoError(t, err)
	_, err = svc.Record(ctx, st.ID, "actor-a", models.DirectionPositive)
	require.NoError(t, err)

	assert.Equal(t, 1, swipes.Len(), "retried decision must not duplicate")
	assert.Equal(t, 1, saved.Len(), "retried cascade must not duplicate")
}

func TestSwipeRecord_DirectionOverwrite(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)
	saved := memory.NewSavedStore(startups)
	svc := NewSwipeService(swipes, saved)

	st := newStartup("x", nil, time.Now())
	seedStartups(t, startups, st)

	_, err := svc.Record(ctx, st.ID, "actor-a", models.DirectionNegative)
	require.NoError(t, err)
	_, err = svc.Record(ctx, st.ID, "actor-a", models.DirectionPositive)
	require.NoError(t, err)

	require.Equal(t, 1, swipes.Len())
	row, ok := swipes.Get(st.ID, "actor-a")
	require.True(t, ok)
	assert.Equal(t, models.DirectionPositive, row.Direction)

	_, ok = saved.Get("actor-a", st.ID)
	assert.True(t, ok, "overwriting to positive must cascade")
}

func TestSwipeRecord_CascadeFailureDoesNotFailDecision(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)

	st := newStartup("x", nil, time.Now())
	seedStartups(t, startups, st)

	swipe, err := NewSwipeService(swipes, failingSavedStore{}).Record(ctx, st.ID, "actor-a", models.DirectionPositive)
	require.NoError(t, err, "the decision is the source of truth; the cascade is best-effort")
	require.NotNil(t, swipe)
	assert.Equal(t, 1, swipes.Len())
}

func TestSwipeRecord_UnknownStartup(t *testing.T) {
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)
	saved := memory.NewSavedStore(startups)

	_, err := NewSwipeService(swipes, saved).Record(context.Background(), "ghost", "actor-a", models.DirectionPositive)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

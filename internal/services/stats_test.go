package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"binder-backend/internal/models"
	"binder-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCountStore struct{}

func (failingCountStore) CountByStartupIDs(context.Context, []string) (map[string]models.SwipeStats, error) {
	return nil, errors.New("connection reset")
}

func TestStatsAggregate_Completeness(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)

	c1 := newStartup("c1", nil, time.Now())
	c2 := newStartup("c2", nil, time.Now())
	seedStartups(t, startups, c1, c2)

	// c1: 3 positive + 2 negative across five actors; c2: untouched.
	for i, dir := range []models.Direction{
		models.DirectionPositive, models.DirectionPositive, models.DirectionPositive,
		models.DirectionNegative, models.DirectionNegative,
	} {
		require.NoError(t, swipes.Upsert(ctx, &models.Swipe{
			StartupID: c1.ID,
			ActorID:   string(rune('a' + i)),
			Direction: dir,
			CreatedAt: time.Now(),
		}))
	}

	stats, err := NewStatsService(swipes).Aggregate(ctx, []string{c1.ID, c2.ID})
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, models.SwipeStats{Total: 5, Positive: 3}, stats[c1.ID])
	assert.Equal(t, models.SwipeStats{Total: 0, Positive: 0}, stats[c2.ID], "zero-swipe ids must be present, not omitted")
}

func TestStatsAggregate_EmptyRequest(t *testing.T) {
	stats, err := NewStatsService(failingCountStore{}).Aggregate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.NotNil(t, stats)
}

func TestStatsAggregate_BatchCap(t *testing.T) {
	ids := make([]string, DeckSize+1)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}

	_, err := NewStatsService(failingCountStore{}).Aggregate(context.Background(), ids)
	require.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestStatsAggregate_QueryErrorFailsWholeCall(t *testing.T) {
	_, err := NewStatsService(failingCountStore{}).Aggregate(context.Background(), []string{"c1"})
	require.ErrorIs(t, err, ErrStatsFetch)
}

func TestStatsAggregate_TwoActorScenario(t *testing.T) {
	ctx := context.Background()
	startups := memory.NewStartupStore()
	swipes := memory.NewSwipeStore(startups)
	saved := memory.NewSavedStore(startups)
	swipeSvc := NewSwipeService(swipes, saved)
	statsSvc := NewStatsService(swipes)

	x := newStartup("x", []string{"Fintech"}, time.Now())
	seedStartups(t, startups, x)

	_, err := swipeSvc.Record(ctx, x.ID, "actor-a", models.DirectionPositive)
	require.NoError(t, err)

	stats, err := statsSvc.Aggregate(ctx, []string{x.ID})
	require.NoError(t, err)
	assert.Equal(t, models.SwipeStats{Total: 1, Positive: 1}, stats[x.ID])

	_, err = swipeSvc.Record(ctx, x.ID, "actor-b", models.DirectionNegative)
	require.NoError(t, err)

	stats, err = statsSvc.Aggregate(ctx, []string{x.ID})
	require.NoError(t, err)
	assert.Equal(t, models.SwipeStats{Total: 2, Positive: 1}, stats[x.ID])

	// B's negative decision leaves A's saved entry alone.
	_, ok := saved.Get("actor-a", x.ID)
	assert.True(t, ok)
}

package cache

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/repository"
	"alcyxob/gymbuddy/internal/repository/memory"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCatalog counts the reads that reach the wrapped repository.
type countingCatalog struct {
	repository.CatalogRepository
	byGroup int
	groups  int
	err     error
}

func (c *countingCatalog) ListByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.AvailableExercise, error) {
	c.byGroup++
	if c.err != nil {
		return nil, c.err
	}
	return c.CatalogRepository.ListByMuscleGroup(ctx, muscleGroup)
}

func (c *countingCatalog) ListMuscleGroups(ctx context.Context) ([]string, error) {
	c.groups++
	if c.err != nil {
		return nil, c.err
	}
	return c.CatalogRepository.ListMuscleGroups(ctx)
}

func newCountingCatalog(t *testing.T) *countingCatalog {
	t.Helper()
	next := &countingCatalog{CatalogRepository: memory.NewStore().Catalog}
	_, err := next.Upsert(context.Background(), []domain.AvailableExercise{
		{Name: "Bench Press", MainMuscleGroup: "Chest", PrimaryEquipment: "Barbell"},
		{Name: "Pull Up", MainMuscleGroup: "Back", PrimaryEquipment: "Bodyweight"},
	})
	require.NoError(t, err)
	return next
}

func TestCatalogRepository_ReadThrough(t *testing.T) {
	ctx := context.Background()
	next := newCountingCatalog(t)
	manager := metrics.NewTestManager()
	cached := NewCatalogRepository(next, 1, time.Hour, manager)

	for i := 0; i < 3; i++ {
		chest, err := cached.ListByMuscleGroup(ctx, "Chest")
		require.NoError(t, err)
		require.Len(t, chest, 1)
		assert.Equal(t, "Bench Press", chest[0].Name)
		assert.NotEmpty(t, chest[0].ID)
	}
	assert.Equal(t, 1, next.byGroup)
	assert.Equal(t, 2.0, testutil.ToFloat64(manager.CounterCatalogCacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(manager.CounterCatalogCacheMisses))

	// each group has its own entry
	_, err := cached.ListByMuscleGroup(ctx, "Back")
	require.NoError(t, err)
	assert.Equal(t, 2, next.byGroup)

	for i := 0; i < 2; i++ {
		groups, err := cached.ListMuscleGroups(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Back", "Chest"}, groups)
	}
	assert.Equal(t, 1, next.groups)
}

func TestCatalogRepository_EmptyResultIsCached(t *testing.T) {
	ctx := context.Background()
	next := newCountingCatalog(t)
	cached := NewCatalogRepository(next, 1, time.Hour, metrics.NewTestManager())

	for i := 0; i < 2; i++ {
		legs, err := cached.ListByMuscleGroup(ctx, "Legs")
		require.NoError(t, err)
		assert.Empty(t, legs)
	}
	assert.Equal(t, 1, next.byGroup)
}

func TestCatalogRepository_UpsertInvalidates(t *testing.T) {
	ctx := context.Background()
	next := newCountingCatalog(t)
	cached := NewCatalogRepository(next, 1, time.Hour, metrics.NewTestManager())

	_, err := cached.ListByMuscleGroup(ctx, "Chest")
	require.NoError(t, err)
	_, err = cached.ListMuscleGroups(ctx)
	require.NoError(t, err)

	n, err := cached.Upsert(ctx, []domain.AvailableExercise{
		{Name: "Cable Fly", MainMuscleGroup: "Chest", PrimaryEquipment: "Cable"},
		{Name: "Squat", MainMuscleGroup: "Legs", PrimaryEquipment: "Barbell"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	chest, err := cached.ListByMuscleGroup(ctx, "Chest")
	require.NoError(t, err)
	assert.Len(t, chest, 2)
	assert.Equal(t, 2, next.byGroup)

	groups, err := cached.ListMuscleGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Back", "Chest", "Legs"}, groups)
	assert.Equal(t, 2, next.groups)
}

func TestCatalogRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	next := newCountingCatalog(t)
	cached := NewCatalogRepository(next, 1, time.Hour, metrics.NewTestManager())

	next.err = errors.New("connection refused")
	_, err := cached.ListByMuscleGroup(ctx, "Chest")
	assert.Error(t, err)

	next.err = nil
	chest, err := cached.ListByMuscleGroup(ctx, "Chest")
	require.NoError(t, err)
	assert.Len(t, chest, 1)
	assert.Equal(t, 2, next.byGroup)
}

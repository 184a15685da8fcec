// Package cache wraps the exercise catalog repository with a read-through
// freecache layer. The catalog only changes when it is seeded, so entries live
// until their TTL expires or Upsert clears the cache.
package cache

import (
	"alcyxob/gymbuddy/internal/domain"
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/repository"
	"context"
	"encoding/json"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte = 1024 * 1024

	muscleGroupsKey   = "groups"
	muscleGroupPrefix = "group::"
)

type CatalogRepository struct {
	next    repository.CatalogRepository
	cache   *freecache.Cache
	ttl     int // seconds, 0 means no expiry
	metrics *metrics.Manager
}

// NewCatalogRepository returns a cached view of next. sizeMB is the freecache
// size in megabytes; freecache enforces a 512KB minimum. Hits and misses are
// counted on metricsManager.
func NewCatalogRepository(next repository.CatalogRepository, sizeMB int, ttl time.Duration, metricsManager *metrics.Manager) *CatalogRepository {
	return &CatalogRepository{
		next:    next,
		cache:   freecache.NewCache(sizeMB * megabyte),
		ttl:     int(ttl.Seconds()),
		metrics: metricsManager,
	}
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

func (c *CatalogRepository) ListByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.AvailableExercise, error) {
	cacheKey := muscleGroupPrefix + muscleGroup
	var exercises []domain.AvailableExercise
	if c.get(cacheKey, &exercises) {
		return exercises, nil
	}

	exercises, err := c.next.ListByMuscleGroup(ctx, muscleGroup)
	if err != nil {
		return nil, err
	}
	c.set(cacheKey, exercises)
	return exercises, nil
}

func (c *CatalogRepository) ListMuscleGroups(ctx context.Context) ([]string, error) {
	var groups []string
	if c.get(muscleGroupsKey, &groups) {
		return groups, nil
	}

	groups, err := c.next.ListMuscleGroups(ctx)
	if err != nil {
		return nil, err
	}
	c.set(muscleGroupsKey, groups)
	return groups, nil
}

// Upsert writes through and drops every cached entry.
func (c *CatalogRepository) Upsert(ctx context.Context, exercises []domain.AvailableExercise) (int, error) {
	n, err := c.next.Upsert(ctx, exercises)
	c.cache.Clear()
	return n, err
}

func (c *CatalogRepository) get(cacheKey string, out any) bool {
	raw, err := c.cache.Get([]byte(cacheKey))
	if err != nil {
		log.Tracef("catalog cache miss for %s: %s", cacheKey, err)
		c.metrics.CounterCatalogCacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Errorf("failed to unmarshal catalog cache entry %s: %s", cacheKey, err)
		c.metrics.CounterCatalogCacheMisses.Inc()
		return false
	}
	c.metrics.CounterCatalogCacheHits.Inc()
	return true
}

func (c *CatalogRepository) set(cacheKey string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Errorf("failed to marshal catalog cache entry %s: %s", cacheKey, err)
		return
	}
	if err := c.cache.Set([]byte(cacheKey), raw, c.ttl); err != nil {
		log.Errorf("failed to write catalog cache entry %s: %s", cacheKey, err)
	}
}

// Package cache provides cache-first decorators over the planner's
// repositories. Ratings are read on every plan generation but change
// rarely, so they are the one table worth fronting with a cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mealsmith/planner/internal/domain/recipe"
	"github.com/mealsmith/planner/internal/infrastructure/monitoring"
	"github.com/mealsmith/planner/internal/ports/outbound"
	"go.uber.org/zap"
)

// CachedRatingRepository wraps a rating repository with a cache-first
// read path. Writes go straight through and invalidate the workspace
// snapshot.
type CachedRatingRepository struct {
	source  outbound.RatingRepository
	cache   outbound.CacheRepository
	ttl     time.Duration
	metrics *monitoring.MetricsCollector
	logger  *zap.Logger
}

// NewCachedRatingRepository creates a cache-first rating repository
func NewCachedRatingRepository(
	source outbound.RatingRepository,
	cacheRepo outbound.CacheRepository,
	ttl time.Duration,
	metrics *monitoring.MetricsCollector,
	logger *zap.Logger,
) outbound.RatingRepository {
	return &CachedRatingRepository{
		source:  source,
		cache:   cacheRepo,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger.Named("rating-cache"),
	}
}

// SaveRating writes through to the source and drops the cached
// workspace snapshot so the next read sees the new preference
func (r *CachedRatingRepository) SaveRating(ctx context.Context, workspaceID, recipeID uuid.UUID, member string, preference recipe.Preference) error {
	if err := r.source.SaveRating(ctx, workspaceID, recipeID, member, preference); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, ratingsKey(workspaceID)); err != nil {
		r.metrics.CacheOperation("delete", "error")
		r.logger.Warn("Failed to invalidate ratings cache",
			zap.String("workspace_id", workspaceID.String()),
			zap.Error(err),
		)
		return nil
	}
	r.metrics.CacheOperation("delete", "ok")
	return nil
}

// RatingsFor returns the workspace snapshot, from cache when possible.
// Cache failures never fail the read; the source is the truth.
func (r *CachedRatingRepository) RatingsFor(ctx context.Context, workspaceID uuid.UUID) (outbound.RatingSnapshot, error) {
	key := ratingsKey(workspaceID)

	if data, err := r.cache.Get(ctx, key); err == nil {
		var snapshot outbound.RatingSnapshot
		if err := json.Unmarshal(data, &snapshot); err == nil {
			r.metrics.CacheOperation("get", "hit")
			return snapshot, nil
		}
		r.logger.Warn("Dropping undecodable ratings cache entry",
			zap.String("workspace_id", workspaceID.String()),
		)
		_ = r.cache.Delete(ctx, key)
	}
	r.metrics.CacheOperation("get", "miss")

	snapshot, err := r.source.RatingsFor(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(snapshot); err == nil {
		if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
			r.metrics.CacheOperation("set", "error")
			r.logger.Warn("Failed to cache ratings snapshot",
				zap.String("workspace_id", workspaceID.String()),
				zap.Error(err),
			)
		} else {
			r.metrics.CacheOperation("set", "ok")
		}
	}

	return snapshot, nil
}

func ratingsKey(workspaceID uuid.UUID) string {
	return fmt.Sprintf("planner:ratings:%s", workspaceID)
}

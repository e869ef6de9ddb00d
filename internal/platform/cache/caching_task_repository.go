// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// CachingTaskRepository decorates a TaskRepository with Redis caching of the
// per-owner stats aggregate. It implements the decorator pattern,
// transparently adding caching without modifying the underlying repository.
// Every task mutation invalidates the owner's cached stats, so the cache
// never serves counts that disagree with the database.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingTaskRepository decorates a TaskRepository with Redis stats caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "taskstats".
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "taskstats"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// Create persists a task and invalidates the owner's cached stats.
func (c *CachingTaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx, t.UserID)
	return nil
}

// FindByID delegates to the underlying repository.
func (c *CachingTaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*entity.Task, error) {
	return c.inner.FindByID(ctx, userID, taskID)
}

// FindAll delegates to the underlying repository.
func (c *CachingTaskRepository) FindAll(ctx context.Context, userID uint, q usecase.ListQuery) ([]entity.Task, error) {
	return c.inner.FindAll(ctx, userID, q)
}

// Save persists a task and invalidates the owner's cached stats.
func (c *CachingTaskRepository) Save(ctx context.Context, t *entity.Task) error {
	if err := c.inner.Save(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx, t.UserID)
	return nil
}

// Delete removes a task and invalidates the owner's cached stats.
func (c *CachingTaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	if err := c.inner.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	c.invalidate(ctx, userID)
	return nil
}

// Stats retrieves the stats aggregate, checking cache first then falling back
// to the database.
func (c *CachingTaskRepository) Stats(ctx context.Context, userID uint) (*entity.TaskStats, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Stats(ctx, userID)
	}

	key := c.cacheKey(userID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.TaskStats
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// invalidate drops the owner's cached stats. Best effort: a failed delete
// only costs a stale read until the TTL expires.
func (c *CachingTaskRepository) invalidate(ctx context.Context, userID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.cacheKey(userID)).Err()
}

// cacheKey generates the cache key for one owner's stats.
func (c *CachingTaskRepository) cacheKey(userID uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, userID)
}

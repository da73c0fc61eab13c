package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pledgevault/crowdfund-backend/internal/escrow/domain"
)

const (
	projectKeyPrefix = "escrow:project:" // Cached snapshot: escrow:project:{project_id}
	defaultTTL       = 30 * time.Second
)

// ProjectCache keeps short-lived JSON snapshots of project records in Redis.
// The engine's store stays authoritative: every committed mutation
// invalidates the snapshot.
type ProjectCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProjectCache(client *redis.Client, ttl time.Duration) *ProjectCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ProjectCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached snapshot, or nil on a miss.
func (c *ProjectCache) Get(ctx context.Context, projectID uint64) (*domain.Project, error) {
	data, err := c.client.Get(ctx, c.projectKey(projectID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached project: %w", err)
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached project: %w", err)
	}

	return &p, nil
}

// Set stores a snapshot with the cache TTL.
func (c *ProjectCache) Set(ctx context.Context, p *domain.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := c.client.Set(ctx, c.projectKey(p.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache project: %w", err)
	}

	return nil
}

// Invalidate drops the snapshot after a committed mutation.
func (c *ProjectCache) Invalidate(ctx context.Context, projectID uint64) error {
	if err := c.client.Del(ctx, c.projectKey(projectID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached project: %w", err)
	}
	return nil
}

func (c *ProjectCache) projectKey(projectID uint64) string {
	return fmt.Sprintf("%s%d", projectKeyPrefix, projectID)
}

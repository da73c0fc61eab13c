package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pledgevault/crowdfund-backend/internal/escrow/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ProjectCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewProjectCache(client, ttl), mr
}

func sampleProject() *domain.Project {
	return &domain.Project{
		ID:          7,
		Creator:     "alice",
		Title:       "Community workshop",
		GoalAmount:  1000,
		Deadline:    time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		FundsRaised: 400,
		CreatedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestProjectCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	p := sampleProject()
	require.NoError(t, cache.Set(ctx, p))

	got, err := cache.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Creator, got.Creator)
	assert.Equal(t, p.FundsRaised, got.FundsRaised)
	assert.True(t, p.Deadline.Equal(got.Deadline))
}

func TestProjectCacheMissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	got, err := cache.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProjectCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	p := sampleProject()
	require.NoError(t, cache.Set(ctx, p))
	require.NoError(t, cache.Invalidate(ctx, p.ID))

	got, err := cache.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProjectCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	p := sampleProject()
	require.NoError(t, cache.Set(ctx, p))

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

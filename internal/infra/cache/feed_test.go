package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	c, err := NewFeedCache("", time.Minute)
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, PublicFeedKey, []string{"a"}))

	var out []string
	hit, err := c.Get(ctx, PublicFeedKey, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)

	assert.NoError(t, c.Invalidate(ctx, PublicFeedKey, TeamFeedKey(1)))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *FeedCache
	hit, err := c.Get(context.Background(), PublicFeedKey, &[]string{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNewFeedCacheRejectsBadURL(t *testing.T) {
	_, err := NewFeedCache("not-a-redis-url", time.Minute)
	assert.Error(t, err)
}

func TestTeamFeedKey(t *testing.T) {
	assert.Equal(t, "barbemnt:feed:team:12", TeamFeedKey(12))
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "job", "Senior PM", 0))
	val, ok, err := c.Get(ctx, "job")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Senior PM", val)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "job", "text", time.Minute))

	now = now.Add(59 * time.Second)
	_, ok, _ := c.Get(ctx, "job")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "job")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestKey(t *testing.T) {
	a := Key("jd", "https://example.com/job/1")
	b := Key("jd", "https://example.com/job/1")
	c := Key("jd", "https://example.com/job/2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, len("jd:")+24)
}

func TestNewRedis_InvalidURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-redis-url")
	require.Error(t, err)

	var cacheErr *Error
	require.True(t, errors.As(err, &cacheErr))
	assert.Equal(t, "connect", cacheErr.Op)
	assert.Contains(t, err.Error(), "invalid redis URL")
}

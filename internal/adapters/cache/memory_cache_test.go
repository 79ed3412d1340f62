package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResponseCache_GetSetExpire(t *testing.T) {
	c := NewMemoryResponseCache(10)
	now := time.Now()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "/api/properties|a", []byte(`{"data":[]}`), time.Hour))

	v, ok, err := c.Get(ctx, "/api/properties|a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"data":[]}`, string(v))

	now = now.Add(time.Hour)
	_, ok, err = c.Get(ctx, "/api/properties|a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryResponseCache_DeletePrefix(t *testing.T) {
	c := NewMemoryResponseCache(10)
	ctx := context.Background()
	for _, k := range []string{"/api/properties|1", "/api/properties|2", "/api/filter-options|1"} {
		require.NoError(t, c.Set(ctx, k, []byte("x"), time.Minute))
	}

	n, err := c.DeletePrefix(ctx, "/api/properties")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok, _ := c.Get(ctx, "/api/filter-options|1")
	assert.True(t, ok)

	n, err = c.DeletePrefix(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryResponseCache_EvictsEarliestExpiry(t *testing.T) {
	c := NewMemoryResponseCache(2)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "long", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "new", []byte("3"), time.Hour))

	_, ok, _ := c.Get(ctx, "short")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "long")
	assert.True(t, ok)
	_, ok, _ = c.Get(ctx, "new")
	assert.True(t, ok)
}

func TestMemoryResponseCache_ZeroTTLIsNotStored(t *testing.T) {
	c := NewMemoryResponseCache(2)
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), 0))
	_, ok, _ := c.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.Equal(t, "memory", c.Backend())
}

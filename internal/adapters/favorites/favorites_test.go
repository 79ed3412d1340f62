package favorites

import (
	"context"
	"os"
	"testing"
	"time"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip - общий сценарий для всех реализаций хранилища
func roundTrip(t *testing.T, store port.FavoritesRepositoryPort) {
	ctx := context.Background()
	visitor := uuid.NewString()

	ids, err := store.List(ctx, visitor)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.Add(ctx, visitor, "101"))
	require.NoError(t, store.Add(ctx, visitor, "202"))
	require.NoError(t, store.Add(ctx, visitor, "101"))

	ids, err = store.List(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, domain.FavoriteIDs{"101", "202"}, ids)

	require.NoError(t, store.Remove(ctx, visitor, "101"))
	require.NoError(t, store.Remove(ctx, visitor, "never-added"))

	ids, err = store.List(ctx, visitor)
	require.NoError(t, err)
	assert.False(t, ids.Contains("101"))
	assert.True(t, ids.Contains("202"))

	other, err := store.List(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryFavoritesStore(t *testing.T) {
	roundTrip(t, NewMemoryFavoritesStore())
}

func TestMemoryFavoritesStore_ListReturnsCopy(t *testing.T) {
	store := NewMemoryFavoritesStore()
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "v", "1"))

	ids, _ := store.List(ctx, "v")
	ids[0] = "mutated"

	again, _ := store.List(ctx, "v")
	assert.Equal(t, domain.FavoriteIDs{"1"}, again)
}

func TestRedisFavoritesStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR is not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	roundTrip(t, NewRedisFavoritesStore(client, "test:"+uuid.NewString()+":", time.Minute))
}

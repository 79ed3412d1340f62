package postgres_adapter

import (
	"context"
	"os"
	"testing"
	"time"

	"listing-service/internal/core/domain"
	"listing-service/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool подключается к DATABASE_TEST_URL; без него тесты пропускаются
func testPool(t *testing.T) *pgxpool.Pool {
	url := os.Getenv("DATABASE_TEST_URL")
	if url == "" {
		t.Skip("DATABASE_TEST_URL is not set")
	}
	ctx := context.Background()
	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: url, MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, EnsureSchema(ctx, pool))
	return pool
}

func TestPostgresFavoritesRepository_RoundTrip(t *testing.T) {
	pool := testPool(t)
	repo, err := NewPostgresFavoritesRepository(pool)
	require.NoError(t, err)

	ctx := context.Background()
	visitor := uuid.NewString()

	require.NoError(t, repo.Add(ctx, visitor, "101"))
	require.NoError(t, repo.Add(ctx, visitor, "101"))
	require.NoError(t, repo.Add(ctx, visitor, "202"))

	ids, err := repo.List(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, domain.FavoriteIDs{"101", "202"}, ids)

	require.NoError(t, repo.Remove(ctx, visitor, "101"))
	require.NoError(t, repo.Remove(ctx, visitor, "missing"))

	ids, err = repo.List(ctx, visitor)
	require.NoError(t, err)
	assert.False(t, ids.Contains("101"))
}

func TestPostgresLeadsRepository_Deliver(t *testing.T) {
	pool := testPool(t)
	repo, err := NewPostgresLeadsRepository(pool)
	require.NoError(t, err)

	lead := domain.Lead{
		ID: uuid.New(), Name: "Ana", Email: "ana@example.com",
		FormType: domain.FormTypeContact, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Deliver(context.Background(), lead))

	var name string
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT name FROM leads WHERE id = $1`, lead.ID).Scan(&name))
	assert.Equal(t, "Ana", name)
}

func TestNewRepositories_RejectNilPool(t *testing.T) {
	_, err := NewPostgresFavoritesRepository(nil)
	assert.Error(t, err)
	_, err = NewPostgresLeadsRepository(nil)
	assert.Error(t, err)
}

package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"listing-service/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

// RedisFavoritesStore хранит список избранного как JSON-массив под favorites:<visitor>.
// Изменения идут через WATCH/MULTI, чтобы параллельные запросы одного посетителя
// не затирали друг друга.
type RedisFavoritesStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

const maxTxRetries = 5

// NewRedisFavoritesStore. ttl = 0 означает бессрочное хранение.
func NewRedisFavoritesStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisFavoritesStore {
	return &RedisFavoritesStore{client: client, keyPrefix: keyPrefix + "favorites:", ttl: ttl}
}

func (s *RedisFavoritesStore) key(visitorID string) string {
	return s.keyPrefix + visitorID
}

func (s *RedisFavoritesStore) List(ctx context.Context, visitorID string) (domain.FavoriteIDs, error) {
	return s.load(ctx, s.client, s.key(visitorID))
}

func (s *RedisFavoritesStore) Add(ctx context.Context, visitorID, propertyID string) error {
	return s.update(ctx, visitorID, func(ids domain.FavoriteIDs) domain.FavoriteIDs { return ids.Add(propertyID) })
}

func (s *RedisFavoritesStore) Remove(ctx context.Context, visitorID, propertyID string) error {
	return s.update(ctx, visitorID, func(ids domain.FavoriteIDs) domain.FavoriteIDs { return ids.Remove(propertyID) })
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisFavoritesStore) load(ctx context.Context, c getter, key string) (domain.FavoriteIDs, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.FavoriteIDs{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get favorites: %w", err)
	}
	var ids domain.FavoriteIDs
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("corrupted favorites list: %w", err)
	}
	return ids, nil
}

func (s *RedisFavoritesStore) update(ctx context.Context, visitorID string, mutate func(domain.FavoriteIDs) domain.FavoriteIDs) error {
	key := s.key(visitorID)
	txf := func(tx *redis.Tx) error {
		ids, err := s.load(ctx, tx, key)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(mutate(ids))
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("redis update favorites: %w", err)
		}
		return nil
	}
	return fmt.Errorf("redis update favorites: too much contention on %s", key)
}

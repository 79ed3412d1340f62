package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

// спецсимволы glob-шаблона SCAN MATCH
var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// RedisResponseCache хранит тела ответов в Redis под общим префиксом
type RedisResponseCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisResponseCache. Клиентом владеет вызывающий код.
func NewRedisResponseCache(client redis.UniversalClient, keyPrefix string) *RedisResponseCache {
	return &RedisResponseCache{client: client, keyPrefix: keyPrefix + "resp:"}
}

func (c *RedisResponseCache) key(k string) string {
	return c.keyPrefix + k
}

func (c *RedisResponseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

func (c *RedisResponseCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// DeletePrefix проходит ключи через SCAN, KEYS на проде не используем
func (c *RedisResponseCache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	pattern := globEscaper.Replace(c.key(prefix)) + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return deleted, fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("redis del: %w", err)
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

func (c *RedisResponseCache) Backend() string { return "redis" }

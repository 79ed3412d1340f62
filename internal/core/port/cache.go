package port

import (
	"context"
	"time"
)

// ResponseCachePort хранит готовые тела ответов
type ResponseCachePort interface {
	// Get возвращает found=false без ошибки, если ключа нет или он истек
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix удаляет все ключи с префиксом и возвращает их количество
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Backend() string
}

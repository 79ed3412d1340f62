package rest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

const (
	cacheStatusHit  = "HIT"
	cacheStatusMiss = "MISS"
	cacheIOTimeout  = 2 * time.Second
)

// responseRecorder копирует тело ответа, чтобы положить его в кеш
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// CacheKey: путь + sha256(путь и отсортированные параметры).
// Путь остается в открытом виде, чтобы сбрасывать кеш по префиксу маршрута.
func CacheKey(r *http.Request) string {
	query := r.URL.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(r.URL.Path)
	for _, k := range keys {
		values := append([]string(nil), query[k]...)
		sort.Strings(values)
		for _, v := range values {
			b.WriteString("&" + k + "=" + v)
		}
	}
	sum := sha256.Sum256([]byte(b.String()))
	return r.URL.Path + "#" + hex.EncodeToString(sum[:])
}

// markUncacheable - ответ-заглушка (например, пустой список при сбое апстрима)
// не должен попасть ни в наш кеш, ни в CDN
func markUncacheable(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}

func cacheControlValue(ttl time.Duration) string {
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate", int(ttl.Seconds()))
}

// CacheMiddleware отдает сохраненный ответ, пока не истечет ttl.
// Кешируются только GET-ответы со статусом 200. Ошибки кеша не ломают запрос.
func CacheMiddleware(cache port.ResponseCachePort, ttl time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cache == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
				"component": "CacheMiddleware",
				"backend":   cache.Backend(),
			})
			key := CacheKey(r)

			getCtx, cancel := context.WithTimeout(r.Context(), cacheIOTimeout)
			body, found, err := cache.Get(getCtx, key)
			cancel()
			if err != nil {
				logger.Warn("Cache read failed, serving fresh response", port.Fields{"error": err.Error()})
			}

			w.Header().Set("Cache-Control", cacheControlValue(ttl))

			if found {
				w.Header().Set(constants.CacheHeader, cacheStatusHit)
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}

			w.Header().Set(constants.CacheHeader, cacheStatusMiss)
			rec := &responseRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK || w.Header().Get("Cache-Control") == "no-store" {
				return
			}

			// запрос мог быть отменен клиентом, но ответ уже собран
			setCtx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), cacheIOTimeout)
			defer cancel()
			if err := cache.Set(setCtx, key, rec.body.Bytes(), ttl); err != nil {
				logger.Warn("Cache write failed", port.Fields{"error": err.Error()})
			}
		})
	}
}

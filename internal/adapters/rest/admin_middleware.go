package rest

import (
	"fmt"
	"net/http"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminMiddleware пропускает только запросы с HS256-токеном роли admin.
// Без секрета служебные маршруты отключены и отвечают 404.
func AdminMiddleware(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				WriteJSONError(w, http.StatusNotFound, "Not found")
				return
			}

			logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"component": "AdminMiddleware"})

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteJSONError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				WriteJSONError(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			claims := &adminClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				logger.Warn("Admin token rejected", port.Fields{"error": err.Error()})
				WriteJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if claims.Role != adminRole {
				WriteJSONError(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

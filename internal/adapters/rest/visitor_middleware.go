package rest

import (
	"context"
	"net/http"

	"listing-service/internal/constants"

	"github.com/google/uuid"
)

type contextKey string

const visitorIDKey = contextKey("visitorID")

// VisitorMiddleware извлекает анонимный идентификатор посетителя из заголовка
func VisitorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visitorIDStr := r.Header.Get(constants.VisitorIDHeader)
		if visitorIDStr == "" {
			WriteJSONError(w, http.StatusBadRequest, "X-Visitor-ID header is missing")
			return
		}

		visitorID, err := uuid.Parse(visitorIDStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid X-Visitor-ID header format")
			return
		}

		ctx := context.WithValue(r.Context(), visitorIDKey, visitorID.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func visitorIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorIDKey).(string)
	return id, ok && id != ""
}

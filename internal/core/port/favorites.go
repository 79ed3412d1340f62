package port

import (
	"context"

	"listing-service/internal/core/domain"
)

type FavoritesRepositoryPort interface {
	// List возвращает id в порядке добавления
	List(ctx context.Context, visitorID string) (domain.FavoriteIDs, error)
	Add(ctx context.Context, visitorID, propertyID string) error
	Remove(ctx context.Context, visitorID, propertyID string) error
}

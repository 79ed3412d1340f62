package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type ListFavoritesUseCase interface {
	Execute(ctx context.Context, visitorID string) (domain.FavoriteIDs, error)
}

type ModifyFavoritesUseCase interface {
	Add(ctx context.Context, visitorID, propertyID string) (domain.FavoriteIDs, error)
	Remove(ctx context.Context, visitorID, propertyID string) (domain.FavoriteIDs, error)
}

type GetFavoritePropertiesUseCase interface {
	Execute(ctx context.Context, visitorID string) ([]domain.Property, error)
}

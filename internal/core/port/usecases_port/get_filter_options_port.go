package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type GetFilterOptionsUseCase interface {
	Execute(ctx context.Context) (*domain.FilterOptions, error)
}

type GetLocationsUseCase interface {
	Execute(ctx context.Context) ([]domain.Location, error)
}

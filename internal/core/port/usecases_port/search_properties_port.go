package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type SearchPropertiesUseCase interface {
	Execute(ctx context.Context, filters domain.PropertyFilters) (*domain.PropertyResponse, error)
}

type GetShowcaseUseCase interface {
	Execute(ctx context.Context, limit int) ([]domain.Property, error)
}

package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type GetPropertyUseCase interface {
	Execute(ctx context.Context, id string, preferred domain.PropertyType) (*domain.Property, error)
}

type GetPropertyByCodeUseCase interface {
	Execute(ctx context.Context, code string) (*domain.Property, error)
}

package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// PropertySourcePort - источник объявлений (Properfy)
type PropertySourcePort interface {
	Search(ctx context.Context, query domain.UpstreamQuery) (*domain.UpstreamPage, error)
	// GetByID возвращает domain.ErrPropertyNotFound, если объекта нет
	GetByID(ctx context.Context, id string, preferred domain.PropertyType) (*domain.Property, error)
	Ping(ctx context.Context) error
	TokenStatus() domain.TokenStatus
}

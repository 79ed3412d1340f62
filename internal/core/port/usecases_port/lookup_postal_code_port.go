package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type LookupPostalCodeUseCase interface {
	Execute(ctx context.Context, rawCEP string) (*domain.PostalCodeAddress, error)
}

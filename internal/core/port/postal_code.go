package port

import (
	"context"

	"listing-service/internal/core/domain"
)

type PostalCodeLookupPort interface {
	// Lookup принимает нормализованный CEP из 8 цифр
	Lookup(ctx context.Context, cep string) (*domain.PostalCodeAddress, error)
}

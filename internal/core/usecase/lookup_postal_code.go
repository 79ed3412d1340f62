package usecase

import (
	"context"
	"errors"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type LookupPostalCodeUseCase struct {
	lookup port.PostalCodeLookupPort
}

func NewLookupPostalCodeUseCase(lookup port.PostalCodeLookupPort) *LookupPostalCodeUseCase {
	return &LookupPostalCodeUseCase{lookup: lookup}
}

func (uc *LookupPostalCodeUseCase) Execute(ctx context.Context, rawCEP string) (*domain.PostalCodeAddress, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "LookupPostalCode", "cep": rawCEP})

	cep, err := domain.NormalizePostalCode(rawCEP)
	if err != nil {
		return nil, err
	}

	addr, err := uc.lookup.Lookup(ctx, cep)
	if err != nil {
		if errors.Is(err, domain.ErrPostalCodeNotFound) {
			ucLogger.Info("Postal code not found", nil)
		} else {
			ucLogger.Error("Postal code lookup failed", err, nil)
		}
		return nil, err
	}
	return addr, nil
}

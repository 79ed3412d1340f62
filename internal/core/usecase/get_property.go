package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type GetPropertyUseCase struct {
	source port.PropertySourcePort
}

func NewGetPropertyUseCase(source port.PropertySourcePort) *GetPropertyUseCase {
	return &GetPropertyUseCase{source: source}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, id string, preferred domain.PropertyType) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetProperty", "property_id": id})
	ucLogger.Info("Use case started", nil)

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrPropertyNotFound
	}

	property, err := uc.source.GetByID(ctx, id, preferred)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			ucLogger.Info("Property not found", nil)
			return nil, err
		}
		ucLogger.Error("Upstream returned an error", err, nil)
		return nil, fmt.Errorf("get property %s: %w", id, err)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return property, nil
}

type GetPropertyByCodeUseCase struct {
	source port.PropertySourcePort
}

func NewGetPropertyByCodeUseCase(source port.PropertySourcePort) *GetPropertyByCodeUseCase {
	return &GetPropertyByCodeUseCase{source: source}
}

func (uc *GetPropertyByCodeUseCase) Execute(ctx context.Context, code string) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetPropertyByCode", "code": code})
	ucLogger.Info("Use case started", nil)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrPropertyNotFound
	}

	page, err := uc.source.Search(ctx, domain.UpstreamQuery{Code: code, Page: 1, Size: 10})
	if err != nil {
		ucLogger.Error("Upstream returned an error", err, nil)
		return nil, fmt.Errorf("search by code %s: %w", code, err)
	}

	// поиск апстрима по коду - частичное совпадение, нужен точный
	for _, p := range page.Properties {
		if strings.EqualFold(p.Code, code) {
			ucLogger.Info("Use case finished successfully", port.Fields{"property_id": p.ID})
			return &p, nil
		}
	}

	ucLogger.Info("Property not found", nil)
	return nil, domain.ErrPropertyNotFound
}

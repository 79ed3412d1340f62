package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// ListingSampler выбирает одну большую страницу объявлений для агрегатов
type ListingSampler struct {
	source port.PropertySourcePort
	size   int
}

func NewListingSampler(source port.PropertySourcePort, size int) *ListingSampler {
	return &ListingSampler{source: source, size: size}
}

func (s *ListingSampler) Sample(ctx context.Context) ([]domain.Property, error) {
	page, err := s.source.Search(ctx, domain.UpstreamQuery{Page: 1, Size: s.size})
	if err != nil {
		return nil, fmt.Errorf("sample listings: %w", err)
	}
	return page.Properties, nil
}

type GetFilterOptionsUseCase struct {
	sampler *ListingSampler
}

func NewGetFilterOptionsUseCase(sampler *ListingSampler) *GetFilterOptionsUseCase {
	return &GetFilterOptionsUseCase{sampler: sampler}
}

// Execute при сбое апстрима отдает пустые опции вместе с ошибкой
func (uc *GetFilterOptionsUseCase) Execute(ctx context.Context) (*domain.FilterOptions, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetFilterOptions"})
	ucLogger.Info("Use case started", nil)

	props, err := uc.sampler.Sample(ctx)
	if err != nil {
		ucLogger.Error("Failed to sample listings, returning empty options", err, nil)
		empty := domain.EmptyFilterOptions()
		return &empty, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	opts := domain.BuildFilterOptions(props)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"sample_size": opts.SampleSize,
		"cities":      len(opts.Cities),
	})
	return &opts, nil
}

type GetLocationsUseCase struct {
	sampler *ListingSampler
}

func NewGetLocationsUseCase(sampler *ListingSampler) *GetLocationsUseCase {
	return &GetLocationsUseCase{sampler: sampler}
}

func (uc *GetLocationsUseCase) Execute(ctx context.Context) ([]domain.Location, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetLocations"})
	ucLogger.Info("Use case started", nil)

	props, err := uc.sampler.Sample(ctx)
	if err != nil {
		ucLogger.Error("Failed to sample listings", err, nil)
		return nil, err
	}

	locations := domain.BuildLocations(props)
	ucLogger.Info("Use case finished successfully", port.Fields{"cities": len(locations)})
	return locations, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"golang.org/x/sync/errgroup"
)

type SearchPropertiesUseCase struct {
	source         port.PropertySourcePort
	locations      usecases_port.GetLocationsUseCase
	sampleSize     int
	maxConcurrency int
}

// NewSearchPropertiesUseCase. locations может быть nil, тогда slug города/района
// не переводится в название и проверяется только локально.
func NewSearchPropertiesUseCase(
	source port.PropertySourcePort,
	locations usecases_port.GetLocationsUseCase,
	sampleSize, maxConcurrency int,
) *SearchPropertiesUseCase {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &SearchPropertiesUseCase{
		source:         source,
		locations:      locations,
		sampleSize:     sampleSize,
		maxConcurrency: maxConcurrency,
	}
}

func (uc *SearchPropertiesUseCase) Execute(ctx context.Context, filters domain.PropertyFilters) (*domain.PropertyResponse, error) {
	filters = filters.Normalize()

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "SearchProperties",
		"type":       filters.Type,
		"categories": filters.Categories,
		"page":       filters.Page,
		"limit":      filters.Limit,
	})
	ucLogger.Info("Use case started", nil)

	filters = uc.resolveSlugs(ctx, filters)

	chrTypes := domain.UpstreamTypesForCategories(filters.Categories)

	var (
		result *domain.PropertyResponse
		err    error
	)
	if len(chrTypes) <= 1 && !filters.NeedsLocalRefinement() {
		result, err = uc.searchSingle(ctx, filters, chrTypes)
	} else {
		result, err = uc.searchFanOut(ctx, ucLogger, filters, chrTypes)
	}
	if err != nil {
		ucLogger.Error("Search failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total":         result.Total,
		"items_on_page": len(result.Data),
	})
	return result, nil
}

// searchSingle - один запрос, пагинация апстрима пробрасывается как есть
func (uc *SearchPropertiesUseCase) searchSingle(ctx context.Context, filters domain.PropertyFilters, chrTypes []string) (*domain.PropertyResponse, error) {
	q := upstreamQuery(filters)
	if len(chrTypes) == 1 {
		q.ChrType = chrTypes[0]
	}
	q.Page = filters.Page
	q.Size = filters.Limit

	page, err := uc.source.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("upstream search: %w", err)
	}

	data := domain.FilterProperties(page.Properties, filters)
	total := page.Total
	if dropped := len(page.Properties) - len(data); dropped > 0 {
		// отброшенные локально строки не должны учитываться в total и hasMore
		total -= dropped
		if seen := (filters.Page-1)*filters.Limit + len(data); total < seen {
			total = seen
		}
	}
	resp := domain.NewPropertyResponse(data, total, filters.Page, filters.Limit)
	return &resp, nil
}

// searchFanOut - по запросу на каждый chrType, затем слияние, дедупликация
// и локальная пагинация. Упавшая ветка пропускается, ошибка только если упали все.
func (uc *SearchPropertiesUseCase) searchFanOut(ctx context.Context, logger port.LoggerPort, filters domain.PropertyFilters, chrTypes []string) (*domain.PropertyResponse, error) {
	if len(chrTypes) == 0 {
		chrTypes = []string{""}
	}

	base := upstreamQuery(filters)
	base.Page = 1
	base.Size = uc.sampleSize

	results := make([][]domain.Property, len(chrTypes))
	var (
		mu       sync.Mutex
		failures []error
	)

	var g errgroup.Group
	g.SetLimit(uc.maxConcurrency)
	for i, chrType := range chrTypes {
		g.Go(func() error {
			q := base
			q.ChrType = chrType
			page, err := uc.source.Search(ctx, q)
			if err != nil {
				logger.Warn("Fan-out branch failed, skipping", port.Fields{"chr_type": chrType, "error": err.Error()})
				mu.Lock()
				failures = append(failures, fmt.Errorf("chrType %q: %w", chrType, err))
				mu.Unlock()
				return nil
			}
			results[i] = page.Properties
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) == len(chrTypes) {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, errors.Join(failures...))
	}

	var merged []domain.Property
	for _, batch := range results {
		merged = append(merged, batch...)
	}
	merged = domain.DeduplicateByID(merged)
	merged = domain.FilterProperties(merged, filters)
	domain.SortProperties(merged, filters.Sort)

	logger.Debug("Fan-out merged", port.Fields{
		"branches":        len(chrTypes),
		"failed_branches": len(failures),
		"matched":         len(merged),
	})

	resp := domain.Paginate(merged, filters.Page, filters.Limit)
	return &resp, nil
}

// resolveSlugs подставляет настоящие названия города/района, чтобы апстрим сузил выборку
func (uc *SearchPropertiesUseCase) resolveSlugs(ctx context.Context, filters domain.PropertyFilters) domain.PropertyFilters {
	if uc.locations == nil || filters.CitySlug == "" || filters.City != "" {
		return filters
	}
	locations, err := uc.locations.Execute(ctx)
	if err != nil {
		return filters
	}
	city, neighborhood, _ := domain.ResolveLocation(locations, filters.CitySlug, filters.NeighborhoodSlug)
	filters.City = city
	if filters.Neighborhood == "" {
		filters.Neighborhood = neighborhood
	}
	return filters
}

func upstreamQuery(f domain.PropertyFilters) domain.UpstreamQuery {
	return domain.UpstreamQuery{
		Type:         f.Type,
		City:         f.City,
		Neighborhood: f.Neighborhood,
		MinPrice:     f.MinPrice,
		MaxPrice:     f.MaxPrice,
		MinBedrooms:  f.MinBedrooms,
		Code:         f.Code,
		Highlighted:  f.OnlyHighlighted,
		Exclusive:    f.OnlyExclusive,
	}
}

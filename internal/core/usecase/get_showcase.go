package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// GetShowcaseUseCase отдает витрину: объекты в destaque или эксклюзивные
type GetShowcaseUseCase struct {
	source      port.PropertySourcePort
	name        string
	highlighted bool
	exclusive   bool
}

func NewGetHighlightedUseCase(source port.PropertySourcePort) *GetShowcaseUseCase {
	return &GetShowcaseUseCase{source: source, name: "GetHighlighted", highlighted: true}
}

func NewGetExclusiveUseCase(source port.PropertySourcePort) *GetShowcaseUseCase {
	return &GetShowcaseUseCase{source: source, name: "GetExclusive", exclusive: true}
}

func (uc *GetShowcaseUseCase) Execute(ctx context.Context, limit int) ([]domain.Property, error) {
	if limit < 1 || limit > domain.MaxLimit {
		limit = domain.DefaultLimit
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": uc.name, "limit": limit})
	ucLogger.Info("Use case started", nil)

	page, err := uc.source.Search(ctx, domain.UpstreamQuery{
		Highlighted: uc.highlighted,
		Exclusive:   uc.exclusive,
		Page:        1,
		Size:        limit,
	})
	if err != nil {
		ucLogger.Error("Upstream returned an error", err, nil)
		return nil, fmt.Errorf("upstream search: %w", err)
	}

	// апстрим иногда игнорирует флаг, перепроверяем
	out := domain.FilterProperties(page.Properties, domain.PropertyFilters{
		OnlyHighlighted: uc.highlighted,
		OnlyExclusive:   uc.exclusive,
	})
	if len(out) > limit {
		out = out[:limit]
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(out)})
	return out, nil
}

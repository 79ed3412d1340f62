package usecase

import (
	"context"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type CheckUpstreamUseCase struct {
	source  port.PropertySourcePort
	baseURL string
}

func NewCheckUpstreamUseCase(source port.PropertySourcePort, baseURL string) *CheckUpstreamUseCase {
	return &CheckUpstreamUseCase{source: source, baseURL: baseURL}
}

// Execute всегда возвращает отчет, ошибка попадает в поле Error
func (uc *CheckUpstreamUseCase) Execute(ctx context.Context) *domain.UpstreamCheck {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "CheckUpstream"})
	logger.Info("Use case started", nil)

	report := &domain.UpstreamCheck{BaseURL: uc.baseURL}
	started := time.Now()

	if err := uc.source.Ping(ctx); err != nil {
		report.Error = err.Error()
		report.Latency = time.Since(started)
		report.Token = uc.source.TokenStatus()
		logger.Error("Upstream ping failed", err, nil)
		return report
	}
	report.Authenticated = true

	page, err := uc.source.Search(ctx, domain.UpstreamQuery{Page: 1, Size: 1})
	report.Latency = time.Since(started)
	report.Token = uc.source.TokenStatus()
	if err != nil {
		report.Error = err.Error()
		logger.Error("Upstream search failed", err, nil)
		return report
	}
	report.SearchOK = true
	report.SampleTotal = page.Total

	logger.Info("Use case finished successfully", port.Fields{"latency_ms": report.Latency.Milliseconds()})
	return report
}

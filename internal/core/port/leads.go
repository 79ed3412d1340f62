package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// LeadSinkPort - любой канал доставки заявки (БД, очередь, Formspark)
type LeadSinkPort interface {
	Name() string
	Deliver(ctx context.Context, lead domain.Lead) error
}

// ChatLinkPort строит ссылку на мессенджер с готовым текстом
type ChatLinkPort interface {
	BuildURL(text string) string
}

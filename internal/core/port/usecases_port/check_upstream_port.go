package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type CheckUpstreamUseCase interface {
	Execute(ctx context.Context) *domain.UpstreamCheck
}

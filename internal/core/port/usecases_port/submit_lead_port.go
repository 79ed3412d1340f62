package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
)

type SubmitLeadUseCase interface {
	Execute(ctx context.Context, lead domain.Lead) (*domain.LeadReceipt, error)
}

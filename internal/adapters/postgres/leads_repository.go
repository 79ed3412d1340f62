package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLeadsRepository сохраняет заявки. Реализует port.LeadSinkPort.
type PostgresLeadsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLeadsRepository(pool *pgxpool.Pool) (*PostgresLeadsRepository, error) {
	if pool == nil {
		return nil, errors.New("pgxpool.Pool cannot be nil")
	}
	return &PostgresLeadsRepository{pool: pool}, nil
}

func (r *PostgresLeadsRepository) Name() string { return "postgres" }

func (r *PostgresLeadsRepository) Deliver(ctx context.Context, lead domain.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, message, property_id, property_code, source, form_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Message,
		lead.PropertyID, lead.PropertyCode, lead.Source, string(lead.FormType), lead.CreatedAt,
	)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert lead", err, port.Fields{
			"component": "PostgresLeadsRepository",
			"lead_id":   lead.ID,
		})
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

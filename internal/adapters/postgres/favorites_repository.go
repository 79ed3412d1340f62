package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFavoritesRepository хранит избранное посетителей в visitor_favorites
type PostgresFavoritesRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFavoritesRepository(pool *pgxpool.Pool) (*PostgresFavoritesRepository, error) {
	if pool == nil {
		return nil, errors.New("pgxpool.Pool cannot be nil")
	}
	return &PostgresFavoritesRepository{pool: pool}, nil
}

func parseVisitor(visitorID string) (uuid.UUID, error) {
	id, err := uuid.Parse(visitorID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrInvalidVisitorID, err)
	}
	return id, nil
}

func (r *PostgresFavoritesRepository) Add(ctx context.Context, visitorID, propertyID string) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresFavoritesRepository",
		"method":      "Add",
		"visitor_id":  visitorID,
		"property_id": propertyID,
	})

	visitor, err := parseVisitor(visitorID)
	if err != nil {
		return err
	}

	query := `INSERT INTO visitor_favorites (visitor_id, property_id) VALUES ($1, $2)`
	_, err = r.pool.Exec(ctx, query, visitor, propertyID)
	if err != nil {
		// 23505 - unique_violation: объект уже в избранном
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			repoLogger.Debug("Favorite already exists, operation considered successful.", nil)
			return nil
		}
		repoLogger.Error("Failed to add favorite", err, nil)
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *PostgresFavoritesRepository) Remove(ctx context.Context, visitorID, propertyID string) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresFavoritesRepository",
		"method":      "Remove",
		"visitor_id":  visitorID,
		"property_id": propertyID,
	})

	visitor, err := parseVisitor(visitorID)
	if err != nil {
		return err
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM visitor_favorites WHERE visitor_id = $1 AND property_id = $2`, visitor, propertyID)
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, nil)
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Debug("Attempted to remove a favorite that did not exist.", nil)
	}
	return nil
}

func (r *PostgresFavoritesRepository) List(ctx context.Context, visitorID string) (domain.FavoriteIDs, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresFavoritesRepository",
		"method":     "List",
		"visitor_id": visitorID,
	})

	visitor, err := parseVisitor(visitorID)
	if err != nil {
		return nil, err
	}

	query := `SELECT property_id FROM visitor_favorites WHERE visitor_id = $1 ORDER BY created_at, property_id`
	rows, err := r.pool.Query(ctx, query, visitor)
	if err != nil {
		repoLogger.Error("Failed to query favorite IDs", err, nil)
		return nil, fmt.Errorf("failed to query favorite IDs: %w", err)
	}
	defer rows.Close()

	ids := domain.FavoriteIDs{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during favorite IDs iteration", err, nil)
		return nil, fmt.Errorf("error during favorite IDs iteration: %w", err)
	}
	return ids, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

func validateVisitorID(visitorID string) error {
	if _, err := uuid.Parse(visitorID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidVisitorID, err)
	}
	return nil
}

type ListFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewListFavoritesUseCase(repo port.FavoritesRepositoryPort) *ListFavoritesUseCase {
	return &ListFavoritesUseCase{repo: repo}
}

func (uc *ListFavoritesUseCase) Execute(ctx context.Context, visitorID string) (domain.FavoriteIDs, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "ListFavorites", "visitor_id": visitorID})

	if err := validateVisitorID(visitorID); err != nil {
		return nil, err
	}

	ids, err := uc.repo.List(ctx, visitorID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	ucLogger.Debug("Favorites loaded", port.Fields{"count": len(ids)})
	if ids == nil {
		ids = domain.FavoriteIDs{}
	}
	return ids, nil
}

type ModifyFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewModifyFavoritesUseCase(repo port.FavoritesRepositoryPort) *ModifyFavoritesUseCase {
	return &ModifyFavoritesUseCase{repo: repo}
}

// Add идемпотентен и возвращает обновленный список
func (uc *ModifyFavoritesUseCase) Add(ctx context.Context, visitorID, propertyID string) (domain.FavoriteIDs, error) {
	return uc.apply(ctx, "AddToFavorites", visitorID, propertyID, uc.repo.Add)
}

// Remove отсутствующего объекта не считается ошибкой
func (uc *ModifyFavoritesUseCase) Remove(ctx context.Context, visitorID, propertyID string) (domain.FavoriteIDs, error) {
	return uc.apply(ctx, "RemoveFromFavorites", visitorID, propertyID, uc.repo.Remove)
}

func (uc *ModifyFavoritesUseCase) apply(
	ctx context.Context,
	name, visitorID, propertyID string,
	op func(ctx context.Context, visitorID, propertyID string) error,
) (domain.FavoriteIDs, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    name,
		"visitor_id":  visitorID,
		"property_id": propertyID,
	})
	ucLogger.Info("Use case started", nil)

	if err := validateVisitorID(visitorID); err != nil {
		return nil, err
	}
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return nil, domain.ErrPropertyNotFound
	}

	if err := op(ctx, visitorID, propertyID); err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ids, err := uc.repo.List(ctx, visitorID)
	if err != nil {
		ucLogger.Error("Failed to reload favorites", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(ids)})
	if ids == nil {
		ids = domain.FavoriteIDs{}
	}
	return ids, nil
}

// GetFavoritePropertiesUseCase загружает карточки избранных объектов
// в порядке добавления. Снятые с публикации объекты пропускаются.
type GetFavoritePropertiesUseCase struct {
	repo           port.FavoritesRepositoryPort
	source         port.PropertySourcePort
	maxConcurrency int
}

func NewGetFavoritePropertiesUseCase(repo port.FavoritesRepositoryPort, source port.PropertySourcePort, maxConcurrency int) *GetFavoritePropertiesUseCase {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &GetFavoritePropertiesUseCase{repo: repo, source: source, maxConcurrency: maxConcurrency}
}

func (uc *GetFavoritePropertiesUseCase) Execute(ctx context.Context, visitorID string) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetFavoriteProperties", "visitor_id": visitorID})
	ucLogger.Info("Use case started", nil)

	if err := validateVisitorID(visitorID); err != nil {
		return nil, err
	}

	ids, err := uc.repo.List(ctx, visitorID)
	if err != nil {
		ucLogger.Error("Failed to get favorite IDs from repository", err, nil)
		return nil, fmt.Errorf("failed to get favorite IDs: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Property{}, nil
	}

	found := make([]*domain.Property, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			p, err := uc.source.GetByID(gctx, id, "")
			if err != nil {
				if errors.Is(err, domain.ErrPropertyNotFound) {
					ucLogger.Warn("Favorite property no longer exists", port.Fields{"property_id": id})
					return nil
				}
				return fmt.Errorf("get property %s: %w", id, err)
			}
			found[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		ucLogger.Error("Failed to load favorite properties", err, nil)
		return nil, err
	}

	// порядок берем из списка id, а не из порядка завершения запросов
	out := make([]domain.Property, 0, len(ids))
	for _, p := range found {
		if p != nil {
			out = append(out, *p)
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(out)})
	return out, nil
}

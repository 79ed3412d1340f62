package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type FavoritesHandler struct {
	listUC       usecases_port.ListFavoritesUseCase
	modifyUC     usecases_port.ModifyFavoritesUseCase
	propertiesUC usecases_port.GetFavoritePropertiesUseCase
}

func NewFavoritesHandler(listUC usecases_port.ListFavoritesUseCase,
	modifyUC usecases_port.ModifyFavoritesUseCase,
	propertiesUC usecases_port.GetFavoritePropertiesUseCase) *FavoritesHandler {
	return &FavoritesHandler{
		listUC:       listUC,
		modifyUC:     modifyUC,
		propertiesUC: propertiesUC,
	}
}

// ListFavorites обрабатывает GET /api/favorites
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Visitor id is missing")
		return
	}

	ids, err := h.listUC.Execute(r.Context(), visitorID)
	if err != nil {
		h.writeError(w, r, "ListFavorites", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoritesResponse{IDs: ids})
}

// ListFavoriteProperties обрабатывает GET /api/favorites/properties
func (h *FavoritesHandler) ListFavoriteProperties(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Visitor id is missing")
		return
	}

	props, err := h.propertiesUC.Execute(r.Context(), visitorID)
	if err != nil {
		h.writeError(w, r, "ListFavoriteProperties", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyList(props))
}

// AddFavorite обрабатывает POST /api/favorites {"propertyId": "..."}
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Visitor id is missing")
		return
	}

	var req FavoriteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	propertyID := strings.TrimSpace(req.PropertyID)
	if propertyID == "" {
		WriteJSONError(w, http.StatusBadRequest, "propertyId is required")
		return
	}

	ids, err := h.modifyUC.Add(r.Context(), visitorID, propertyID)
	if err != nil {
		h.writeError(w, r, "AddFavorite", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoritesResponse{IDs: ids})
}

// RemoveFavorite обрабатывает DELETE /api/favorites/{propertyID}
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := visitorIDFromContext(r.Context())
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Visitor id is missing")
		return
	}

	propertyID := strings.TrimSpace(chi.URLParam(r, "propertyID"))
	if propertyID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Property id is required")
		return
	}

	ids, err := h.modifyUC.Remove(r.Context(), visitorID, propertyID)
	if err != nil {
		h.writeError(w, r, "RemoveFavorite", err)
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoritesResponse{IDs: ids})
}

func (h *FavoritesHandler) writeError(w http.ResponseWriter, r *http.Request, name string, err error) {
	if errors.Is(err, domain.ErrInvalidVisitorID) {
		WriteJSONError(w, http.StatusBadRequest, "Invalid visitor id")
		return
	}
	contextkeys.LoggerFromContext(r.Context()).Error("Favorites use case failed", err, port.Fields{"handler": name})
	WriteJSONError(w, http.StatusInternalServerError, "Failed to process favorites")
}

package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type PropertyHandler struct {
	searchUC      usecases_port.SearchPropertiesUseCase
	highlightedUC usecases_port.GetShowcaseUseCase
	exclusiveUC   usecases_port.GetShowcaseUseCase
	getByIDUC     usecases_port.GetPropertyUseCase
	getByCodeUC   usecases_port.GetPropertyByCodeUseCase
}

func NewPropertyHandler(searchUC usecases_port.SearchPropertiesUseCase,
	highlightedUC usecases_port.GetShowcaseUseCase,
	exclusiveUC usecases_port.GetShowcaseUseCase,
	getByIDUC usecases_port.GetPropertyUseCase,
	getByCodeUC usecases_port.GetPropertyByCodeUseCase) *PropertyHandler {
	return &PropertyHandler{
		searchUC:      searchUC,
		highlightedUC: highlightedUC,
		exclusiveUC:   exclusiveUC,
		getByIDUC:     getByIDUC,
		getByCodeUC:   getByCodeUC,
	}
}

// SearchProperties обрабатывает GET /api/properties.
// Сбой апстрима не превращается в 500: фронт получает пустую страницу.
func (h *PropertyHandler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchProperties"})

	filters, err := parsePropertyFilters(r.URL.Query())
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.searchUC.Execute(r.Context(), filters)
	if err != nil {
		logger.Error("Search failed, responding with empty result", err, nil)
		markUncacheable(w)
		RespondWithJSON(w, http.StatusOK, toPaginatedResponse(domain.EmptyPropertyResponse(filters.Page, filters.Limit)))
		return
	}

	RespondWithJSON(w, http.StatusOK, toPaginatedResponse(*result))
}

func (h *PropertyHandler) GetHighlighted(w http.ResponseWriter, r *http.Request) {
	h.showcase(w, r, "GetHighlighted", h.highlightedUC)
}

func (h *PropertyHandler) GetExclusive(w http.ResponseWriter, r *http.Request) {
	h.showcase(w, r, "GetExclusive", h.exclusiveUC)
}

func (h *PropertyHandler) showcase(w http.ResponseWriter, r *http.Request, name string, uc usecases_port.GetShowcaseUseCase) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": name})

	limit := domain.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteJSONError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	props, err := uc.Execute(r.Context(), limit)
	if err != nil {
		logger.Error("Showcase failed, responding with empty list", err, nil)
		markUncacheable(w)
		RespondWithJSON(w, http.StatusOK, []PropertyResponse{})
		return
	}

	RespondWithJSON(w, http.StatusOK, toPropertyList(props))
}

// GetProperty обрабатывает GET /api/properties/{propertyID}?type=rent
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "propertyID"))
	if id == "" {
		WriteJSONError(w, http.StatusBadRequest, "Property id is required")
		return
	}

	var preferred domain.PropertyType
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, ok := domain.ParsePropertyType(raw)
		if !ok {
			WriteJSONError(w, http.StatusBadRequest, "Invalid type")
			return
		}
		preferred = t
	}

	property, err := h.getByIDUC.Execute(r.Context(), id, preferred)
	h.respondWithProperty(w, r, "GetProperty", property, err)
}

func (h *PropertyHandler) GetPropertyByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		WriteJSONError(w, http.StatusBadRequest, "Property code is required")
		return
	}

	property, err := h.getByCodeUC.Execute(r.Context(), code)
	h.respondWithProperty(w, r, "GetPropertyByCode", property, err)
}

func (h *PropertyHandler) respondWithProperty(w http.ResponseWriter, r *http.Request, name string, property *domain.Property, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		contextkeys.LoggerFromContext(r.Context()).Error("Failed to get property", err, port.Fields{"handler": name})
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve property")
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyResponse(*property))
}

package rest

import (
	"net/http"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

type CatalogHandler struct {
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCase
	getLocationsUC     usecases_port.GetLocationsUseCase
}

func NewCatalogHandler(getFilterOptionsUC usecases_port.GetFilterOptionsUseCase,
	getLocationsUC usecases_port.GetLocationsUseCase) *CatalogHandler {
	return &CatalogHandler{
		getFilterOptionsUC: getFilterOptionsUC,
		getLocationsUC:     getLocationsUC,
	}
}

// GetFilterOptions обрабатывает GET /api/filter-options
func (h *CatalogHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.getFilterOptionsUC.Execute(r.Context())
	if err != nil || options == nil {
		// пустой ответ при сбое не должен попасть ни в кэш, ни в CDN
		contextkeys.LoggerFromContext(r.Context()).Error("Failed to get filter options", err, port.Fields{"handler": "GetFilterOptions"})
		markUncacheable(w)
		RespondWithJSON(w, http.StatusOK, toFilterOptionsResponse(domain.EmptyFilterOptions()))
		return
	}

	RespondWithJSON(w, http.StatusOK, toFilterOptionsResponse(*options))
}

// GetLocations обрабатывает GET /api/locations
func (h *CatalogHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.getLocationsUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Failed to get locations", err, port.Fields{"handler": "GetLocations"})
		markUncacheable(w)
		RespondWithJSON(w, http.StatusOK, []LocationResponse{})
		return
	}

	RespondWithJSON(w, http.StatusOK, toLocationsResponse(locations))
}

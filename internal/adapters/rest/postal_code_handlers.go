package rest

import (
	"errors"
	"net/http"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type PostalCodeHandler struct {
	lookupUC usecases_port.LookupPostalCodeUseCase
}

func NewPostalCodeHandler(lookupUC usecases_port.LookupPostalCodeUseCase) *PostalCodeHandler {
	return &PostalCodeHandler{lookupUC: lookupUC}
}

// LookupPostalCode обрабатывает GET /api/postal-codes/{cep}
func (h *PostalCodeHandler) LookupPostalCode(w http.ResponseWriter, r *http.Request) {
	address, err := h.lookupUC.Execute(r.Context(), chi.URLParam(r, "cep"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPostalCode):
			WriteJSONError(w, http.StatusBadRequest, "Postal code must have 8 digits")
		case errors.Is(err, domain.ErrPostalCodeNotFound):
			WriteJSONError(w, http.StatusNotFound, "Postal code not found")
		default:
			contextkeys.LoggerFromContext(r.Context()).Error("Postal code lookup failed", err, port.Fields{"handler": "LookupPostalCode"})
			WriteJSONError(w, http.StatusBadGateway, "Postal code service unavailable")
		}
		return
	}

	RespondWithJSON(w, http.StatusOK, toPostalCodeResponse(*address))
}

package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
)

const maxLeadBodyBytes = 64 << 10

// LeadValidator проверяет сырое тело заявки до декодирования
type LeadValidator interface {
	ValidateLead(body []byte) error
}

type LeadHandler struct {
	validator LeadValidator
	submitUC  usecases_port.SubmitLeadUseCase
}

func NewLeadHandler(validator LeadValidator, submitUC usecases_port.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{validator: validator, submitUC: submitUC}
}

// SubmitLead обрабатывает POST /api/leads
func (h *LeadHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitLead"})

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxLeadBodyBytes))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if h.validator != nil {
		if err := h.validator.ValidateLead(body); err != nil {
			logger.Warn("Lead rejected by schema", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var req LeadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := h.submitUC.Execute(r.Context(), req.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidLead):
			WriteJSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrLeadNotDelivered):
			logger.Error("Lead was not delivered", err, nil)
			WriteJSONError(w, http.StatusBadGateway, "Failed to deliver the form, please try again later")
		default:
			logger.Error("Submit lead use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to submit the form")
		}
		return
	}

	RespondWithJSON(w, http.StatusCreated, LeadResponse{
		ID:          receipt.ID.String(),
		WhatsAppURL: receipt.WhatsAppURL,
	})
}

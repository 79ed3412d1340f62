package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

type SubmitLeadUseCase struct {
	sinks []port.LeadSinkPort
	chat  port.ChatLinkPort
	now   func() time.Time
}

// NewSubmitLeadUseCase. chat может быть nil, если номер WhatsApp не настроен.
func NewSubmitLeadUseCase(chat port.ChatLinkPort, sinks ...port.LeadSinkPort) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{sinks: sinks, chat: chat, now: time.Now}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, lead domain.Lead) (*domain.LeadReceipt, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "SubmitLead",
		"form_type": lead.FormType,
		"source":    lead.Source,
	})
	ucLogger.Info("Use case started", nil)

	if err := validateLead(lead); err != nil {
		ucLogger.Warn("Lead rejected", port.Fields{"reason": err.Error()})
		return nil, err
	}

	lead.ID = uuid.New()
	lead.CreatedAt = uc.now().UTC()
	receipt := &domain.LeadReceipt{ID: lead.ID, Delivered: []string{}}

	for _, sink := range uc.sinks {
		if err := sink.Deliver(ctx, lead); err != nil {
			ucLogger.Error("Lead sink failed", err, port.Fields{"sink": sink.Name(), "lead_id": lead.ID})
			continue
		}
		receipt.Delivered = append(receipt.Delivered, sink.Name())
	}

	if uc.chat != nil {
		receipt.WhatsAppURL = uc.chat.BuildURL(lead.WhatsAppText())
	}

	// без настроенных каналов заявка уходит только через ссылку WhatsApp
	if len(receipt.Delivered) == 0 && (len(uc.sinks) > 0 || receipt.WhatsAppURL == "") {
		ucLogger.Error("Lead was not delivered", domain.ErrLeadNotDelivered, port.Fields{"lead_id": lead.ID})
		return nil, domain.ErrLeadNotDelivered
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"lead_id":   lead.ID,
		"delivered": receipt.Delivered,
	})
	return receipt, nil
}

func validateLead(lead domain.Lead) error {
	if strings.TrimSpace(lead.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidLead)
	}
	if lead.Email == "" && lead.Phone == "" {
		return fmt.Errorf("%w: email or phone is required", domain.ErrInvalidLead)
	}
	if lead.Email != "" {
		if _, err := mail.ParseAddress(lead.Email); err != nil {
			return fmt.Errorf("%w: bad email", domain.ErrInvalidLead)
		}
	}
	switch lead.FormType {
	case domain.FormTypeContact, domain.FormTypeAnnounce:
	case domain.FormTypeProperty:
		if lead.PropertyID == "" && lead.PropertyCode == "" {
			return fmt.Errorf("%w: property form requires propertyId or propertyCode", domain.ErrInvalidLead)
		}
	default:
		return fmt.Errorf("%w: unknown form type %q", domain.ErrInvalidLead, lead.FormType)
	}
	return nil
}

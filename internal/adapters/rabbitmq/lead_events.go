package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// jsonPublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher
type jsonPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload interface{}, headers amqp.Table) error
}

// LeadCreatedEvent - тело сообщения lead.created v1
type LeadCreatedEvent struct {
	LeadID       string    `json:"lead_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Message      string    `json:"message,omitempty"`
	PropertyID   string    `json:"property_id,omitempty"`
	PropertyCode string    `json:"property_code,omitempty"`
	Source       string    `json:"source,omitempty"`
	FormType     string    `json:"form_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func newLeadCreatedEvent(lead domain.Lead) LeadCreatedEvent {
	return LeadCreatedEvent{
		LeadID:       lead.ID.String(),
		Name:         lead.Name,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Message:      lead.Message,
		PropertyID:   lead.PropertyID,
		PropertyCode: lead.PropertyCode,
		Source:       lead.Source,
		FormType:     string(lead.FormType),
		CreatedAt:    lead.CreatedAt,
	}
}

// LeadEventsAdapter публикует событие о новой заявке. Реализует port.LeadSinkPort.
type LeadEventsAdapter struct {
	producer       jsonPublisher
	publishTimeout time.Duration
}

func NewLeadEventsAdapter(producer jsonPublisher) (*LeadEventsAdapter, error) {
	if producer == nil {
		return nil, errors.New("rabbitmq adapter: producer cannot be nil")
	}
	return &LeadEventsAdapter{producer: producer, publishTimeout: 10 * time.Second}, nil
}

func (a *LeadEventsAdapter) Name() string { return "rabbitmq" }

func (a *LeadEventsAdapter) Deliver(ctx context.Context, lead domain.Lead) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "LeadEventsAdapter",
		"routing_key": constants.LeadCreatedRoutingKey,
		"lead_id":     lead.ID.String(),
	})

	headers := amqp.Table{
		"event-type":    constants.LeadCreatedEventType,
		"event-version": constants.LeadCreatedEventVersion,
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		headers["x-trace-id"] = traceID
	}

	event := newLeadCreatedEvent(lead)
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal lead event: %w", err)
	}
	if err := contracts.Validate(contracts.LeadCreatedEventSchema, contracts.SchemaVersionV1, body); err != nil {
		adapterLogger.Error("Lead event does not match contract", err, nil)
		return fmt.Errorf("rabbitmq adapter: invalid lead event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.publishTimeout)
	defer cancel()

	if err := a.producer.PublishJSON(publishCtx, constants.LeadCreatedRoutingKey, event, headers); err != nil {
		adapterLogger.Error("Failed to publish lead event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish lead %s: %w", lead.ID, err)
	}

	adapterLogger.Debug("Lead event published", nil)
	return nil
}

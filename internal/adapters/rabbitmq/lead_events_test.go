package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	routingKey string
	payload    interface{}
	headers    amqp.Table
	hadTimeout bool
	err        error
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, routingKey string, payload interface{}, headers amqp.Table) error {
	_, p.hadTimeout = ctx.Deadline()
	p.routingKey, p.payload, p.headers = routingKey, payload, headers
	return p.err
}

func TestLeadEventsAdapter_Deliver(t *testing.T) {
	pub := &recordingPublisher{}
	adapter, err := NewLeadEventsAdapter(pub)
	require.NoError(t, err)

	lead := domain.Lead{
		ID: uuid.New(), Name: "Ana", Email: "ana@example.com",
		PropertyCode: "AP01", FormType: domain.FormTypeProperty, CreatedAt: time.Now(),
	}
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")

	require.NoError(t, adapter.Deliver(ctx, lead))

	assert.Equal(t, constants.LeadCreatedRoutingKey, pub.routingKey)
	assert.True(t, pub.hadTimeout)
	assert.Equal(t, "trace-1", pub.headers["x-trace-id"])
	assert.Equal(t, constants.LeadCreatedEventType, pub.headers["event-type"])

	event, ok := pub.payload.(LeadCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, lead.ID.String(), event.LeadID)
	assert.Equal(t, "property", event.FormType)
	assert.Equal(t, "rabbitmq", adapter.Name())
}

func TestLeadEventsAdapter_PublishError(t *testing.T) {
	adapter, err := NewLeadEventsAdapter(&recordingPublisher{err: errors.New("channel closed")})
	require.NoError(t, err)

	lead := domain.Lead{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", FormType: domain.FormTypeContact, CreatedAt: time.Now()}
	err = adapter.Deliver(context.Background(), lead)
	assert.ErrorContains(t, err, "channel closed")
}

func TestLeadEventsAdapter_RejectsEventOutsideContract(t *testing.T) {
	pub := &recordingPublisher{}
	adapter, err := NewLeadEventsAdapter(pub)
	require.NoError(t, err)

	err = adapter.Deliver(context.Background(), domain.Lead{ID: uuid.New(), FormType: domain.FormTypeContact, CreatedAt: time.Now()})
	assert.ErrorContains(t, err, "invalid lead event")
	assert.Empty(t, pub.routingKey)
}

type capturingLogger struct {
	msgs   []string
	fields []port.Fields
}

func (c *capturingLogger) Info(msg string, f port.Fields) {
	c.msgs = append(c.msgs, msg)
	c.fields = append(c.fields, f)
}
func (c *capturingLogger) Warn(msg string, f port.Fields)           { c.Info(msg, f) }
func (c *capturingLogger) Debug(msg string, f port.Fields)          { c.Info(msg, f) }
func (c *capturingLogger) Error(msg string, _ error, f port.Fields) { c.Info(msg, f) }
func (c *capturingLogger) WithFields(port.Fields) port.LoggerPort   { return c }

func TestPkgLoggerBridge_SkipsBrokenPairs(t *testing.T) {
	logger := &capturingLogger{}
	bridge := NewPkgLoggerBridge(logger)

	bridge.Info("connected", "url", "amqp://x", 42, "ignored", "dangling")

	require.Len(t, logger.fields, 1)
	assert.Equal(t, port.Fields{"url": "amqp://x"}, logger.fields[0])
}

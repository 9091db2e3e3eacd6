package telemetry

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// AuditEmitter publishes audit envelopes for user-visible mutations and refusals.
type AuditEmitter struct {
	publisher   Publisher
	routingKey  string
	service     string
	environment string
	now         func() time.Time
}

type AuditEnvelope struct {
	SchemaVersion int          `json:"schema_version"`
	EventType     string       `json:"event_type"`
	OccurredAt    string       `json:"occurred_at"`
	Service       string       `json:"service"`
	Environment   string       `json:"environment"`
	RequestID     string       `json:"request_id"`
	User          *string      `json:"user,omitempty"`
	Payload       AuditPayload `json:"payload"`
}

type AuditPayload struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func NewAuditEmitter(publisher Publisher, routingKey, service, environment string) *AuditEmitter {
	return &AuditEmitter{
		publisher:   publisher,
		routingKey:  routingKey,
		service:     service,
		environment: environment,
		now:         time.Now,
	}
}

// Emit never fails the caller; publish errors are logged and dropped.
func (e *AuditEmitter) Emit(ctx context.Context, level, text, requestID string, user *string) {
	if e == nil || e.publisher == nil {
		return
	}

	logger := zerolog.Ctx(ctx)
	envelope := AuditEnvelope{
		SchemaVersion: 1,
		EventType:     "audit_log",
		OccurredAt:    e.now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     requestID,
		User:          user,
		Payload: AuditPayload{
			Level: level,
			Text:  text,
		},
	}
	logger.Debug().Str("level", level).Str("request_id", requestID).Str("text", text).Msg("audit emit")

	if err := e.publisher.Publish(ctx, e.routingKey, envelope); err != nil {
		logger.Warn().Err(err).Str("request_id", requestID).Msg("audit publish failed")
	}
}

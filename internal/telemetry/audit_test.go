package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatroom-service/internal/mocks"
)

func TestEmitPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.chatroom", "chatroom-service", "test")
	emitter.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	var got AuditEnvelope
	publisher.On("Publish", mock.Anything, "audit.chatroom", mock.AnythingOfType("telemetry.AuditEnvelope")).
		Run(func(args mock.Arguments) { got = args.Get(2).(AuditEnvelope) }).
		Return(nil).Once()

	user := "alice"
	emitter.Emit(context.Background(), "INFO", "Chatroom created", "req-1", &user)

	publisher.AssertExpectations(t)
	assert.Equal(t, 1, got.SchemaVersion)
	assert.Equal(t, "audit_log", got.EventType)
	assert.Equal(t, "2024-01-02T03:04:05Z", got.OccurredAt)
	assert.Equal(t, "chatroom-service", got.Service)
	assert.Equal(t, "test", got.Environment)
	assert.Equal(t, "req-1", got.RequestID)
	require.NotNil(t, got.User)
	assert.Equal(t, "alice", *got.User)
	assert.Equal(t, AuditPayload{Level: "INFO", Text: "Chatroom created"}, got.Payload)
}

func TestEmitSwallowsPublishError(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.chatroom", "chatroom-service", "test")
	publisher.On("Publish", mock.Anything, "audit.chatroom", mock.Anything).Return(errors.New("broker down")).Once()

	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), "ERROR", "not admin", "req-2", nil)
	})
	publisher.AssertExpectations(t)
}

func TestEmitOnNilEmitterIsNoop(t *testing.T) {
	var emitter *AuditEmitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), "INFO", "x", "req", nil)
	})
}

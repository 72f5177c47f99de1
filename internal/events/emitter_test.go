package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	mu           sync.Mutex
	LastEvent    *BookingEvent
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *BookingEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func testEvent() *BookingEvent {
	return NewBookingEvent(TypeBookingCreated, uuid.New(), uuid.New(), uuid.New(), time.Now())
}

func TestNewBookingEvent(t *testing.T) {
	bookingID, userID, courseID := uuid.New(), uuid.New(), uuid.New()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("TPE", 8*3600))

	event := NewBookingEvent(TypeBookingCancelled, bookingID, userID, courseID, at)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeBookingCancelled, event.Type)
	assert.Equal(t, bookingID, event.BookingID)
	assert.Equal(t, userID, event.UserID)
	assert.Equal(t, courseID, event.CourseID)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.True(t, at.Equal(event.OccurredAt))
}

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), testEvent()))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := testEvent()
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("failing handler does not stop fan-out", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		failing := &MockEventHandler{HandlerError: errors.New("broker down")}
		after := &MockEventHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(after)

		err := emitter.EmitEvent(context.Background(), testEvent())
		assert.EqualError(t, err, "broker down")
		assert.Equal(t, 1, after.HandledCount)
	})

	t.Run("first error wins", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		emitter.RegisterHandler(&MockEventHandler{HandlerError: errors.New("first")})
		emitter.RegisterHandler(&MockEventHandler{HandlerError: errors.New("second")})

		assert.EqualError(t, emitter.EmitEvent(context.Background(), testEvent()), "first")
	})

	t.Run("log handler never fails", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		emitter.RegisterHandler(NewLogHandler(logger))
		assert.NoError(t, emitter.EmitEvent(context.Background(), testEvent()))
	})
}

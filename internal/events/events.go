package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Booking lifecycle event types. They double as AMQP routing keys.
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingEvent records a committed change to a course booking.
type BookingEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is TypeBookingCreated or TypeBookingCancelled
	Type string `json:"type"`

	BookingID uuid.UUID `json:"booking_id,omitempty"`
	UserID    uuid.UUID `json:"user_id"`
	CourseID  uuid.UUID `json:"course_id"`

	// OccurredAt is when the change was committed
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingEvent creates a BookingEvent of the given type.
func NewBookingEvent(eventType string, bookingID, userID, courseID uuid.UUID, at time.Time) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		BookingID:  bookingID,
		UserID:     userID,
		CourseID:   courseID,
		OccurredAt: at.UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *BookingEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *BookingEvent) error
}

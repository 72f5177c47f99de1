package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the derived state of a CourseBooking.
type BookingStatus string

// A booking is active until it is cancelled; there is no way back.
const (
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

var (
	ErrEmptyBookingUserID   = errors.New("booking user ID cannot be empty")
	ErrEmptyBookingCourseID = errors.New("booking course ID cannot be empty")
	ErrBookingCancelled     = errors.New("booking is already cancelled")
)

// CourseBooking links a user to a course. It is never deleted; cancelling
// stamps CancelledAt so credit and capacity are released while history stays.
type CourseBooking struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	CourseID           uuid.UUID  `json:"course_id"`
	BookingAt          time.Time  `json:"booking_at"`
	JoinAt             *time.Time `json:"join_at,omitempty"`
	LeaveAt            *time.Time `json:"leave_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// NewCourseBooking creates an active booking made at the given time.
func NewCourseBooking(userID, courseID uuid.UUID, at time.Time) (*CourseBooking, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyBookingUserID
	}
	if courseID == uuid.Nil {
		return nil, ErrEmptyBookingCourseID
	}
	at = at.UTC()
	return &CourseBooking{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		BookingAt: at,
		CreatedAt: at,
	}, nil
}

// IsActive reports whether the booking still holds a credit and a seat.
func (b *CourseBooking) IsActive() bool {
	return b.CancelledAt == nil
}

// Status returns the booking's state.
func (b *CourseBooking) Status() BookingStatus {
	if b.IsActive() {
		return BookingStatusActive
	}
	return BookingStatusCancelled
}

// Cancel moves an active booking to the cancelled state.
func (b *CourseBooking) Cancel(at time.Time) error {
	if !b.IsActive() {
		return ErrBookingCancelled
	}
	t := at.UTC()
	b.CancelledAt = &t
	return nil
}

// UserCourseBooking is a booking joined with its course and coach, as shown
// in a user's booking list.
type UserCourseBooking struct {
	CourseID   uuid.UUID     `json:"course_id"`
	Name       string        `json:"name"`
	CoachName  string        `json:"coach_name"`
	StartAt    time.Time     `json:"start_at"`
	EndAt      time.Time     `json:"end_at"`
	MeetingURL string        `json:"meeting_url"`
	Status     BookingStatus `json:"status"`
}

package booking_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/events"
	"github.com/livefit/livefit-api/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingHandler collects emitted events.
type recordingHandler struct {
	mu     sync.Mutex
	events []*events.BookingEvent
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, e *events.BookingEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
	return h.err
}

func (h *recordingHandler) types() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	for i, e := range h.events {
		out[i] = e.Type
	}
	return out
}

func newService(ledger booking.Ledger, handler events.EventHandler) booking.Service {
	emitter := events.NewInMemoryEventEmitter(discardLogger())
	if handler != nil {
		emitter.RegisterHandler(handler)
	}
	return booking.NewService(ledger, emitter, discardLogger())
}

func TestBookingScenarios(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	handler := &recordingHandler{}
	svc := newService(ledger, handler)

	user := ledger.addUser(1)
	courseX := ledger.addCourse(1)
	courseY := ledger.addCourse(5)

	// A: one credit, empty course with one seat.
	b, err := svc.BookCourse(ctx, user, courseX)
	require.NoError(t, err)
	assert.True(t, b.IsActive())
	assert.Equal(t, user, b.UserID)
	assert.Equal(t, courseX, b.CourseID)

	// B: the only credit is in use.
	_, err = svc.BookCourse(ctx, user, courseY)
	assert.ErrorIs(t, err, booking.ErrInsufficientCredit)

	// C: cancelling frees the credit again.
	require.NoError(t, svc.CancelBooking(ctx, user, courseX))
	_, err = svc.BookCourse(ctx, user, courseY)
	require.NoError(t, err)

	assert.Equal(t, []string{
		events.TypeBookingCreated,
		events.TypeBookingCancelled,
		events.TypeBookingCreated,
	}, handler.types())
}

func TestBookCourseCheckOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(l *memoryLedger) (userID, courseID uuid.UUID)
		wantErr error
	}{
		{
			name: "missing course reported before missing credit",
			setup: func(l *memoryLedger) (uuid.UUID, uuid.UUID) {
				return l.addUser(0), uuid.New()
			},
			wantErr: booking.ErrCourseNotFound,
		},
		{
			name: "duplicate reported before missing credit",
			setup: func(l *memoryLedger) (uuid.UUID, uuid.UUID) {
				u, c := l.addUser(1), l.addCourse(1)
				l.bookings = append(l.bookings, &domain.CourseBooking{ID: uuid.New(), UserID: u, CourseID: c})
				return u, c
			},
			wantErr: booking.ErrAlreadyBooked,
		},
		{
			name: "credit checked before capacity",
			setup: func(l *memoryLedger) (uuid.UUID, uuid.UUID) {
				c := l.addCourse(1)
				other := l.addUser(1)
				l.bookings = append(l.bookings, &domain.CourseBooking{ID: uuid.New(), UserID: other, CourseID: c})
				return l.addUser(0), c
			},
			wantErr: booking.ErrInsufficientCredit,
		},
		{
			name: "full course",
			setup: func(l *memoryLedger) (uuid.UUID, uuid.UUID) {
				c := l.addCourse(1)
				other := l.addUser(1)
				l.bookings = append(l.bookings, &domain.CourseBooking{ID: uuid.New(), UserID: other, CourseID: c})
				return l.addUser(1), c
			},
			wantErr: booking.ErrCourseFull,
		},
		{
			name: "last credit and last seat are usable",
			setup: func(l *memoryLedger) (uuid.UUID, uuid.UUID) {
				u := l.addUser(2)
				c := l.addCourse(2)
				l.bookings = append(l.bookings,
					&domain.CourseBooking{ID: uuid.New(), UserID: u, CourseID: l.addCourse(1)},
					&domain.CourseBooking{ID: uuid.New(), UserID: l.addUser(1), CourseID: c},
				)
				return u, c
			},
		},
		{
			name: "cancelled bookings neither use credit nor seats",
			setup: func(l *memoryLedger) (uuid.UUID, uuid.UUID) {
				u, c := l.addUser(1), l.addCourse(1)
				at := time.Now()
				l.bookings = append(l.bookings, &domain.CourseBooking{ID: uuid.New(), UserID: u, CourseID: c, CancelledAt: &at})
				return u, c
			},
		},
		{
			name: "unknown user",
			setup: func(l *memoryLedger) (uuid.UUID, uuid.UUID) {
				return uuid.New(), l.addCourse(1)
			},
			wantErr: booking.ErrUserNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := newMemoryLedger()
			userID, courseID := tc.setup(ledger)
			svc := newService(ledger, nil)

			b, err := svc.BookCourse(ctx, userID, courseID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, courseID, b.CourseID)
		})
	}
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("no active booking", func(t *testing.T) {
		ledger := newMemoryLedger()
		svc := newService(ledger, nil)
		err := svc.CancelBooking(ctx, ledger.addUser(1), ledger.addCourse(1))
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})

	t.Run("unknown course", func(t *testing.T) {
		ledger := newMemoryLedger()
		svc := newService(ledger, nil)
		err := svc.CancelBooking(ctx, ledger.addUser(1), uuid.New())
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)
	})

	t.Run("second cancel never frees a second seat", func(t *testing.T) {
		ledger := newMemoryLedger()
		svc := newService(ledger, nil)
		user, course := ledger.addUser(1), ledger.addCourse(1)

		_, err := svc.BookCourse(ctx, user, course)
		require.NoError(t, err)
		require.NoError(t, svc.CancelBooking(ctx, user, course))

		err = svc.CancelBooking(ctx, user, course)
		assert.ErrorIs(t, err, booking.ErrBookingNotFound)

		summary, err := svc.Summary(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, booking.CreditSummary{Total: 1, Used: 0, Remaining: 1}, *summary)
	})

	t.Run("cancellation keeps history", func(t *testing.T) {
		ledger := newMemoryLedger()
		fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		svc := booking.NewService(ledger, nil, discardLogger(), booking.WithClock(func() time.Time { return fixed }))
		user, course := ledger.addUser(1), ledger.addCourse(1)

		_, err := svc.BookCourse(ctx, user, course)
		require.NoError(t, err)
		require.NoError(t, svc.CancelBooking(ctx, user, course))

		require.Len(t, ledger.bookings, 1)
		require.NotNil(t, ledger.bookings[0].CancelledAt)
		assert.Equal(t, fixed, *ledger.bookings[0].CancelledAt)
		assert.Equal(t, domain.BookingStatusCancelled, ledger.bookings[0].Status())
	})
}

func TestConcurrentBookingsRespectCapacity(t *testing.T) {
	const (
		attempts = 25
		capacity = 4
	)
	ctx := context.Background()
	ledger := newMemoryLedger()
	svc := newService(ledger, nil)
	course := ledger.addCourse(capacity)

	users := make([]uuid.UUID, attempts)
	for i := range users {
		users[i] = ledger.addUser(1)
	}

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.BookCourse(ctx, users[i], course)
		}(i)
	}
	wg.Wait()

	admitted, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, booking.ErrCourseFull):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, capacity, admitted)
	assert.Equal(t, attempts-capacity, full)
	assert.Equal(t, capacity, ledger.activeFor(func(b *domain.CourseBooking) bool { return b.CourseID == course }))
}

func TestConcurrentBookingsRespectCredit(t *testing.T) {
	const attempts = 10
	ctx := context.Background()
	ledger := newMemoryLedger()
	svc := newService(ledger, nil)
	user := ledger.addUser(3)

	courses := make([]uuid.UUID, attempts)
	for i := range courses {
		courses[i] = ledger.addCourse(10)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for _, course := range courses {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.BookCourse(ctx, user, course); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, booking.ErrInsufficientCredit)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, admitted)
	assert.Equal(t, 3, ledger.activeFor(func(b *domain.CourseBooking) bool { return b.UserID == user }))
}

// Scenario D: two users race for the last seat.
func TestLastSeatRace(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	svc := newService(ledger, nil)
	course := ledger.addCourse(1)
	alice, bob := ledger.addUser(1), ledger.addUser(1)

	var wg sync.WaitGroup
	var errA, errB error
	wg.Add(2)
	go func() { defer wg.Done(); _, errA = svc.BookCourse(ctx, alice, course) }()
	go func() { defer wg.Done(); _, errB = svc.BookCourse(ctx, bob, course) }()
	wg.Wait()

	if errA == nil {
		assert.ErrorIs(t, errB, booking.ErrCourseFull)
	} else {
		assert.ErrorIs(t, errA, booking.ErrCourseFull)
		assert.NoError(t, errB)
	}
}

func TestEventFailureDoesNotChangeOutcome(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	handler := &recordingHandler{err: errors.New("broker unreachable")}
	svc := newService(ledger, handler)
	user, course := ledger.addUser(1), ledger.addCourse(1)

	b, err := svc.BookCourse(ctx, user, course)
	require.NoError(t, err)
	require.NotNil(t, b)
	require.NoError(t, svc.CancelBooking(ctx, user, course))
	assert.Len(t, handler.types(), 2)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	svc := newService(ledger, nil)
	user := ledger.addUser(5)

	for i := 0; i < 2; i++ {
		_, err := svc.BookCourse(ctx, user, ledger.addCourse(3))
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, booking.CreditSummary{Total: 5, Used: 2, Remaining: 3}, *summary)
}

func TestNewServicePanicsWithoutLedger(t *testing.T) {
	assert.Panics(t, func() { booking.NewService(nil, nil, nil) })
}

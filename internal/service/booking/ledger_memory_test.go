package booking_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/service/booking"
	"github.com/livefit/livefit-api/internal/store"
)

// memoryLedger is an in-memory Ledger. InTx holds one mutex for the whole
// unit of work, which gives the same serialisation the row locks give in
// Postgres. Writes are staged and only applied when fn succeeds.
type memoryLedger struct {
	mu        sync.Mutex
	users     map[uuid.UUID]bool
	courses   map[uuid.UUID]*domain.Course
	purchases map[uuid.UUID]int
	bookings  []*domain.CourseBooking
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		users:     make(map[uuid.UUID]bool),
		courses:   make(map[uuid.UUID]*domain.Course),
		purchases: make(map[uuid.UUID]int),
	}
}

func (l *memoryLedger) addUser(credits int) uuid.UUID {
	id := uuid.New()
	l.users[id] = true
	l.purchases[id] = credits
	return id
}

func (l *memoryLedger) addCourse(maxParticipants int) uuid.UUID {
	id := uuid.New()
	l.courses[id] = &domain.Course{ID: id, MaxParticipants: maxParticipants}
	return id
}

func (l *memoryLedger) activeFor(match func(b *domain.CourseBooking) bool) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, b := range l.bookings {
		if b.IsActive() && match(b) {
			n++
		}
	}
	return n
}

func (l *memoryLedger) InTx(ctx context.Context, fn func(context.Context, booking.LedgerRepository) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	repo := &memoryRepo{ledger: l, cancels: make(map[*domain.CourseBooking]time.Time)}
	if err := fn(ctx, repo); err != nil {
		return err
	}
	l.bookings = append(l.bookings, repo.created...)
	for b, at := range repo.cancels {
		t := at
		b.CancelledAt = &t
	}
	return nil
}

type memoryRepo struct {
	ledger  *memoryLedger
	created []*domain.CourseBooking
	cancels map[*domain.CourseBooking]time.Time
}

func (r *memoryRepo) active() []*domain.CourseBooking {
	var out []*domain.CourseBooking
	for _, b := range append(append([]*domain.CourseBooking{}, r.ledger.bookings...), r.created...) {
		if _, cancelled := r.cancels[b]; b.IsActive() && !cancelled {
			out = append(out, b)
		}
	}
	return out
}

func (r *memoryRepo) LockUser(_ context.Context, userID uuid.UUID) error {
	if !r.ledger.users[userID] {
		return store.ErrUserNotFound
	}
	return nil
}

func (r *memoryRepo) LockCourse(_ context.Context, courseID uuid.UUID) (*domain.Course, error) {
	c, ok := r.ledger.courses[courseID]
	if !ok {
		return nil, store.ErrCourseNotFound
	}
	return c, nil
}

func (r *memoryRepo) GetActiveBooking(_ context.Context, userID, courseID uuid.UUID) (*domain.CourseBooking, error) {
	for _, b := range r.active() {
		if b.UserID == userID && b.CourseID == courseID {
			return b, nil
		}
	}
	return nil, store.ErrBookingNotFound
}

func (r *memoryRepo) SumPurchasedCredits(_ context.Context, userID uuid.UUID) (int, error) {
	return r.ledger.purchases[userID], nil
}

func (r *memoryRepo) CountActiveByUser(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, b := range r.active() {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) CountActiveByCourse(_ context.Context, courseID uuid.UUID) (int, error) {
	n := 0
	for _, b := range r.active() {
		if b.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) CreateBooking(ctx context.Context, b *domain.CourseBooking) error {
	if _, err := r.GetActiveBooking(ctx, b.UserID, b.CourseID); err == nil {
		return store.ErrActiveBookingExists
	}
	r.created = append(r.created, b)
	return nil
}

func (r *memoryRepo) CancelActive(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (int64, error) {
	b, err := r.GetActiveBooking(ctx, userID, courseID)
	if err != nil {
		return 0, nil
	}
	r.cancels[b] = at
	return 1, nil
}

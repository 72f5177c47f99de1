package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/store"
)

// LedgerRepository is the view of persistence the evaluator works through.
// Every instance is scoped to one transaction.
type LedgerRepository interface {
	// LockUser takes the user's row lock. Returns store.ErrUserNotFound if absent.
	LockUser(ctx context.Context, userID uuid.UUID) error

	// LockCourse takes the course's row lock and returns the course.
	// Returns store.ErrCourseNotFound if absent.
	LockCourse(ctx context.Context, courseID uuid.UUID) (*domain.Course, error)

	// GetActiveBooking returns store.ErrBookingNotFound if there is none.
	GetActiveBooking(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseBooking, error)

	SumPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error)
	CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error)

	// CreateBooking returns store.ErrActiveBookingExists on a uniqueness conflict.
	CreateBooking(ctx context.Context, booking *domain.CourseBooking) error

	// CancelActive reports how many rows the conditional update touched.
	CancelActive(ctx context.Context, userID, courseID uuid.UUID, at time.Time) (int64, error)
}

// Ledger runs a unit of work atomically. The repository handed to fn is valid
// only for the duration of fn.
type Ledger interface {
	InTx(ctx context.Context, fn func(ctx context.Context, repo LedgerRepository) error) error
}

// StoreLedger implements Ledger on top of the store interfaces and a *sql.DB.
type StoreLedger struct {
	db        *sql.DB
	users     store.UserStore
	courses   store.CourseStore
	bookings  store.BookingStore
	purchases store.CreditPurchaseStore
}

var _ Ledger = (*StoreLedger)(nil)

// NewStoreLedger creates a Ledger whose transactions run at READ COMMITTED;
// serialisation comes from the row locks the evaluator takes.
func NewStoreLedger(
	db *sql.DB,
	users store.UserStore,
	courses store.CourseStore,
	bookings store.BookingStore,
	purchases store.CreditPurchaseStore,
) *StoreLedger {
	if db == nil {
		panic("db cannot be nil")
	}
	if users == nil || courses == nil || bookings == nil || purchases == nil {
		panic("stores cannot be nil")
	}
	return &StoreLedger{
		db:        db,
		users:     users,
		courses:   courses,
		bookings:  bookings,
		purchases: purchases,
	}
}

// InTx implements Ledger.InTx
func (l *StoreLedger) InTx(ctx context.Context, fn func(context.Context, LedgerRepository) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	return store.RunInTransactionWithOptions(ctx, l.db, opts, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, &storeLedgerRepository{
			users:     l.users.WithTx(tx),
			courses:   l.courses.WithTx(tx),
			bookings:  l.bookings.WithTx(tx),
			purchases: l.purchases.WithTx(tx),
		})
	})
}

// storeLedgerRepository adapts transaction-bound stores to LedgerRepository
type storeLedgerRepository struct {
	users     store.UserStore
	courses   store.CourseStore
	bookings  store.BookingStore
	purchases store.CreditPurchaseStore
}

func (r *storeLedgerRepository) LockUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.users.LockByID(ctx, userID)
	return err
}

func (r *storeLedgerRepository) LockCourse(ctx context.Context, courseID uuid.UUID) (*domain.Course, error) {
	return r.courses.LockByID(ctx, courseID)
}

func (r *storeLedgerRepository) GetActiveBooking(
	ctx context.Context,
	userID, courseID uuid.UUID,
) (*domain.CourseBooking, error) {
	return r.bookings.GetActive(ctx, userID, courseID)
}

func (r *storeLedgerRepository) SumPurchasedCredits(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.purchases.SumCreditsByUser(ctx, userID)
}

func (r *storeLedgerRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return r.bookings.CountActiveByUser(ctx, userID)
}

func (r *storeLedgerRepository) CountActiveByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	return r.bookings.CountActiveByCourse(ctx, courseID)
}

func (r *storeLedgerRepository) CreateBooking(ctx context.Context, b *domain.CourseBooking) error {
	return r.bookings.Create(ctx, b)
}

func (r *storeLedgerRepository) CancelActive(
	ctx context.Context,
	userID, courseID uuid.UUID,
	at time.Time,
) (int64, error) {
	return r.bookings.CancelActive(ctx, userID, courseID, at)
}

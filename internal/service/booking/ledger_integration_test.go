//go:build integration

package booking_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/postgres"
	"github.com/livefit/livefit-api/internal/service/booking"
	"github.com/livefit/livefit-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	db       *sql.DB
	svc      booking.Service
	users    *postgres.PostgresUserStore
	courses  *postgres.PostgresCourseStore
	packages *postgres.PostgresCreditPackageStore
	purchase *postgres.PostgresCreditPurchaseStore
	coachID  uuid.UUID
	skillID  uuid.UUID
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	db := testdb.GetTestDBWithT(t)
	testdb.ResetTables(t, db)

	f := &ledgerFixture{
		db:       db,
		users:    postgres.NewPostgresUserStore(db, nil),
		courses:  postgres.NewPostgresCourseStore(db, nil),
		packages: postgres.NewPostgresCreditPackageStore(db, nil),
		purchase: postgres.NewPostgresCreditPurchaseStore(db, nil),
	}
	bookings := postgres.NewPostgresBookingStore(db, nil)
	ledger := booking.NewStoreLedger(db, f.users, f.courses, bookings, f.purchase)
	f.svc = booking.NewService(ledger, nil, nil)

	f.coachID = f.newUser(t, 0)
	skill, err := domain.NewSkill("Yoga")
	require.NoError(t, err)
	require.NoError(t, postgres.NewPostgresSkillStore(db, nil).Create(context.Background(), skill))
	f.skillID = skill.ID
	return f
}

// newUser creates a user holding the given number of purchased credits.
func (f *ledgerFixture) newUser(t *testing.T, credits int) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	u, err := domain.NewUser("member", fmt.Sprintf("%s@example.com", uuid.NewString()), "Passw0rdX")
	require.NoError(t, err)
	u.HashedPassword = "$2a$10$notarealhash"
	require.NoError(t, f.users.Create(ctx, u))

	if credits > 0 {
		pkg, err := domain.NewCreditPackage(fmt.Sprintf("pkg-%s", uuid.NewString()[:8]), credits, 100)
		require.NoError(t, err)
		require.NoError(t, f.packages.Create(ctx, pkg))
		p, err := domain.NewCreditPurchase(u.ID, pkg, time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, f.purchase.Create(ctx, p))
	}
	return u.ID
}

func (f *ledgerFixture) newCourse(t *testing.T, maxParticipants int) uuid.UUID {
	t.Helper()
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	c, err := domain.NewCourse(f.coachID, domain.CourseDetails{
		SkillID:         f.skillID,
		Name:            "Course " + uuid.NewString()[:8],
		Description:     "integration",
		StartAt:         start,
		EndAt:           start.Add(time.Hour),
		MaxParticipants: maxParticipants,
		MeetingURL:      "https://meet.example.com/room",
	})
	require.NoError(t, err)
	require.NoError(t, f.courses.Create(context.Background(), c))
	return c.ID
}

func TestLedger_BookCancelRebook(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	user := f.newUser(t, 1)
	courseX := f.newCourse(t, 1)
	courseY := f.newCourse(t, 5)

	_, err := f.svc.BookCourse(ctx, user, courseX)
	require.NoError(t, err)

	_, err = f.svc.BookCourse(ctx, user, courseY)
	assert.ErrorIs(t, err, booking.ErrInsufficientCredit)

	_, err = f.svc.BookCourse(ctx, user, courseX)
	assert.ErrorIs(t, err, booking.ErrAlreadyBooked)

	require.NoError(t, f.svc.CancelBooking(ctx, user, courseX))
	assert.ErrorIs(t, f.svc.CancelBooking(ctx, user, courseX), booking.ErrBookingNotFound)

	_, err = f.svc.BookCourse(ctx, user, courseY)
	require.NoError(t, err)

	summary, err := f.svc.Summary(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, booking.CreditSummary{Total: 1, Used: 1, Remaining: 0}, *summary)
}

// bookConcurrently books each (user, course) pair at the same time and
// returns the errors in input order.
func bookConcurrently(svc booking.Service, pairs [][2]uuid.UUID) []error {
	errs := make([]error, len(pairs))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, p := range pairs {
		wg.Add(1)
		go func(i int, userID, courseID uuid.UUID) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.BookCourse(context.Background(), userID, courseID)
		}(i, p[0], p[1])
	}
	close(start)
	wg.Wait()
	return errs
}

func countOutcomes(t *testing.T, errs []error, expected error) (ok, rejected int) {
	t.Helper()
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, expected):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	return ok, rejected
}

func TestLedger_ConcurrentLastSeat(t *testing.T) {
	f := newLedgerFixture(t)
	course := f.newCourse(t, 1)
	a := f.newUser(t, 1)
	b := f.newUser(t, 1)

	errs := bookConcurrently(f.svc, [][2]uuid.UUID{{a, course}, {b, course}})

	ok, full := countOutcomes(t, errs, booking.ErrCourseFull)
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, full)
}

func TestLedger_ConcurrentCapacity(t *testing.T) {
	const (
		capacity = 3
		members  = 12
	)
	f := newLedgerFixture(t)
	course := f.newCourse(t, capacity)

	pairs := make([][2]uuid.UUID, members)
	for i := range pairs {
		pairs[i] = [2]uuid.UUID{f.newUser(t, 1), course}
	}

	errs := bookConcurrently(f.svc, pairs)

	ok, full := countOutcomes(t, errs, booking.ErrCourseFull)
	assert.Equal(t, capacity, ok)
	assert.Equal(t, members-capacity, full)
}

func TestLedger_ConcurrentCredit(t *testing.T) {
	const (
		credits = 2
		courses = 6
	)
	f := newLedgerFixture(t)
	user := f.newUser(t, credits)

	pairs := make([][2]uuid.UUID, courses)
	for i := range pairs {
		pairs[i] = [2]uuid.UUID{user, f.newCourse(t, 10)}
	}

	errs := bookConcurrently(f.svc, pairs)

	ok, noCredit := countOutcomes(t, errs, booking.ErrInsufficientCredit)
	assert.Equal(t, credits, ok)
	assert.Equal(t, courses-credits, noCredit)

	summary, err := f.svc.Summary(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Remaining)
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/events"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/livefit/livefit-api/internal/service/booking"

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	ledger  Ledger
	emitter events.EventEmitter
	tracer  trace.Tracer
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures the booking service.
type Option func(*serviceImpl)

// WithClock replaces time.Now for booking and cancellation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTracer sets the tracer used for operation spans. The global provider's
// tracer is used otherwise.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *serviceImpl) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// NewService creates the booking service. emitter may be nil, in which case
// no events are published.
func NewService(ledger Ledger, emitter events.EventEmitter, logger *slog.Logger, opts ...Option) Service {
	if ledger == nil {
		panic("ledger cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &serviceImpl{
		ledger:  ledger,
		emitter: emitter,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
		logger:  logger.With(slog.String("component", "booking_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BookCourse implements Service.BookCourse
func (s *serviceImpl) BookCourse(
	ctx context.Context,
	userID, courseID uuid.UUID,
) (*domain.CourseBooking, error) {
	ctx, span := s.tracer.Start(ctx, "booking.BookCourse", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("course.id", courseID.String()),
	))
	defer span.End()

	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("course_id", courseID.String()))

	var booking *domain.CourseBooking
	err := s.ledger.InTx(ctx, func(ctx context.Context, repo LedgerRepository) error {
		// User before course, always, so two requests never wait on each other's locks.
		if err := repo.LockUser(ctx, userID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return storeFailure("lock user", err)
		}

		course, err := repo.LockCourse(ctx, courseID)
		if err != nil {
			if errors.Is(err, store.ErrCourseNotFound) {
				return ErrCourseNotFound
			}
			return storeFailure("lock course", err)
		}

		if _, err := repo.GetActiveBooking(ctx, userID, courseID); err == nil {
			return ErrAlreadyBooked
		} else if !errors.Is(err, store.ErrBookingNotFound) {
			return storeFailure("get active booking", err)
		}

		// Balances are derived from purchase and booking rows; nothing is stored.
		total, err := repo.SumPurchasedCredits(ctx, userID)
		if err != nil {
			return storeFailure("sum purchased credits", err)
		}
		used, err := repo.CountActiveByUser(ctx, userID)
		if err != nil {
			return storeFailure("count user bookings", err)
		}
		taken, err := repo.CountActiveByCourse(ctx, courseID)
		if err != nil {
			return storeFailure("count course bookings", err)
		}

		span.SetAttributes(
			attribute.Int("credit.total", total),
			attribute.Int("credit.used", used),
			attribute.Int("course.taken", taken),
			attribute.Int("course.max_participants", course.MaxParticipants),
		)

		// credit before capacity
		if used >= total {
			return ErrInsufficientCredit
		}
		if taken >= course.MaxParticipants {
			return ErrCourseFull
		}

		b, err := domain.NewCourseBooking(userID, courseID, s.now())
		if err != nil {
			return fmt.Errorf("failed to build booking: %w", err)
		}
		if err := repo.CreateBooking(ctx, b); err != nil {
			// uq_course_bookings_active backs up the check above
			if errors.Is(err, store.ErrActiveBookingExists) {
				return ErrAlreadyBooked
			}
			return storeFailure("create booking", err)
		}

		booking = b
		return nil
	})
	if err != nil {
		err = classify(err)
		s.recordOutcome(span, err)
		if errors.Is(err, ErrStoreUnavailable) {
			log.Error("booking failed", slog.String("error", err.Error()))
		} else {
			log.Debug("booking rejected", slog.String("reason", err.Error()))
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("booking.id", booking.ID.String()))
	log.Info("course booked", slog.String("booking_id", booking.ID.String()))

	// Emitted after commit; a failed publish never undoes the booking.
	s.emit(ctx, events.NewBookingEvent(events.TypeBookingCreated, booking.ID, userID, courseID, booking.BookingAt))
	return booking, nil
}

// CancelBooking implements Service.CancelBooking
func (s *serviceImpl) CancelBooking(ctx context.Context, userID, courseID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "booking.CancelBooking", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("course.id", courseID.String()),
	))
	defer span.End()

	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("course_id", courseID.String()))

	var bookingID uuid.UUID
	cancelledAt := s.now().UTC()
	err := s.ledger.InTx(ctx, func(ctx context.Context, repo LedgerRepository) error {
		if err := repo.LockUser(ctx, userID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return storeFailure("lock user", err)
		}

		// A course that does not exist cannot hold a booking either.
		if _, err := repo.LockCourse(ctx, courseID); err != nil {
			if errors.Is(err, store.ErrCourseNotFound) {
				return ErrBookingNotFound
			}
			return storeFailure("lock course", err)
		}

		active, err := repo.GetActiveBooking(ctx, userID, courseID)
		if err != nil {
			if errors.Is(err, store.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return storeFailure("get active booking", err)
		}

		// matches only rows with cancelled_at still NULL
		n, err := repo.CancelActive(ctx, userID, courseID, cancelledAt)
		if err != nil {
			return storeFailure("cancel booking", err)
		}
		if n == 0 {
			return ErrCancelFailed
		}

		bookingID = active.ID
		return nil
	})
	if err != nil {
		err = classify(err)
		s.recordOutcome(span, err)
		if errors.Is(err, ErrStoreUnavailable) {
			log.Error("cancellation failed", slog.String("error", err.Error()))
		} else {
			log.Debug("cancellation rejected", slog.String("reason", err.Error()))
		}
		return err
	}

	log.Info("booking cancelled", slog.String("booking_id", bookingID.String()))

	s.emit(ctx, events.NewBookingEvent(events.TypeBookingCancelled, bookingID, userID, courseID, cancelledAt))
	return nil
}

// Summary implements Service.Summary
func (s *serviceImpl) Summary(ctx context.Context, userID uuid.UUID) (*CreditSummary, error) {
	ctx, span := s.tracer.Start(ctx, "booking.Summary",
		trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()

	var summary CreditSummary
	err := s.ledger.InTx(ctx, func(ctx context.Context, repo LedgerRepository) error {
		total, err := repo.SumPurchasedCredits(ctx, userID)
		if err != nil {
			return storeFailure("sum purchased credits", err)
		}
		used, err := repo.CountActiveByUser(ctx, userID)
		if err != nil {
			return storeFailure("count user bookings", err)
		}
		summary = CreditSummary{Total: total, Used: used, Remaining: max(total-used, 0)}
		return nil
	})
	if err != nil {
		err = classify(err)
		s.recordOutcome(span, err)
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to compute credit summary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	return &summary, nil
}

// emit publishes an event after commit. The booking outcome is already
// final, so a failed publish is only logged.
func (s *serviceImpl) emit(ctx context.Context, event *events.BookingEvent) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit booking event",
			slog.String("error", err.Error()),
			slog.String("event_type", event.Type),
			slog.String("event_id", event.ID.String()))
	}
}

func (s *serviceImpl) recordOutcome(span trace.Span, err error) {
	span.RecordError(err)
	if errors.Is(err, ErrStoreUnavailable) {
		span.SetStatus(codes.Error, "store unavailable")
		return
	}
	span.SetAttributes(attribute.String("booking.rejection", err.Error()))
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}

// classify leaves ledger outcomes intact and folds everything else, such as
// begin and commit failures, into ErrStoreUnavailable.
func classify(err error) error {
	if isLedgerError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

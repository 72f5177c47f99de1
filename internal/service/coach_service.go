package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/livefit/livefit-api/internal/store"
)

// CoachProfile holds the editable attributes of a coach.
type CoachProfile struct {
	ExperienceYears int
	Description     string
	ProfileImageURL *string
	SkillIDs        []uuid.UUID
}

// CoachDetail is a coach together with the user that owns the profile.
type CoachDetail struct {
	User  *domain.User
	Coach *domain.Coach
}

// CoachService manages coach profiles.
type CoachService interface {
	// Promote turns a USER into a COACH and creates the coach profile in one
	// transaction. Returns store.ErrUserNotFound or ErrAlreadyCoach.
	Promote(ctx context.Context, userID uuid.UUID, profile CoachProfile) (*CoachDetail, error)

	// UpdateProfile saves the profile of the coach owned by userID and
	// replaces its skill links. Every skill must exist.
	UpdateProfile(ctx context.Context, userID uuid.UUID, profile CoachProfile) (*domain.Coach, error)

	// GetProfile returns the coach owned by userID with its skill ids.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Coach, error)

	// ListCoaches returns one page of coaches. page and per start at 1.
	ListCoaches(ctx context.Context, page, per int) ([]domain.CoachListing, error)

	// GetCoach returns the coach and its user.
	GetCoach(ctx context.Context, coachID uuid.UUID) (*CoachDetail, error)

	// ListCoachCourses returns the courses offered by a coach, or ErrNoCourses.
	ListCoachCourses(ctx context.Context, coachID uuid.UUID) ([]*domain.Course, error)
}

type coachServiceImpl struct {
	db      *sql.DB
	users   store.UserStore
	coaches store.CoachStore
	skills  store.SkillStore
	courses store.CourseStore
	logger  *slog.Logger
}

// NewCoachService creates a CoachService. db is used to run the promote and
// profile update transactions.
func NewCoachService(
	db *sql.DB,
	users store.UserStore,
	coaches store.CoachStore,
	skills store.SkillStore,
	courses store.CourseStore,
	logger *slog.Logger,
) CoachService {
	if db == nil {
		panic("db cannot be nil")
	}
	if users == nil || coaches == nil || skills == nil || courses == nil {
		panic("stores cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &coachServiceImpl{
		db:      db,
		users:   users,
		coaches: coaches,
		skills:  skills,
		courses: courses,
		logger:  logger.With(slog.String("component", "coach_service")),
	}
}

func (s *coachServiceImpl) Promote(ctx context.Context, userID uuid.UUID, profile CoachProfile) (*CoachDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	coach, err := domain.NewCoach(userID, profile.ExperienceYears, profile.Description, profile.ProfileImageURL)
	if err != nil {
		return nil, invalid("coach", err)
	}

	var user *domain.User
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.users.WithTx(tx)
		coaches := s.coaches.WithTx(tx)

		// lock the user so two promotions of the same user serialise here
		u, err := users.LockByID(ctx, userID)
		if err != nil {
			return err
		}
		if u.IsCoach() {
			return ErrAlreadyCoach
		}
		if err := users.UpdateRole(ctx, userID, domain.RoleCoach); err != nil {
			return err
		}
		if err := coaches.Create(ctx, coach); err != nil {
			// a USER with a leftover coach row
			if errors.Is(err, store.ErrCoachExists) {
				return ErrAlreadyCoach
			}
			return err
		}
		u.Role = domain.RoleCoach
		user = u
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) && !errors.Is(err, ErrAlreadyCoach) {
			log.Error("failed to promote user",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return nil, err
	}

	log.Info("user promoted to coach",
		slog.String("user_id", userID.String()),
		slog.String("coach_id", coach.ID.String()))
	return &CoachDetail{User: user, Coach: coach}, nil
}

func (s *coachServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	profile CoachProfile,
) (*domain.Coach, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	skillIDs := uniqueIDs(profile.SkillIDs)
	if len(skillIDs) == 0 {
		return nil, invalid("skill_ids", domain.ErrEmptySkillIDs)
	}
	if profile.ProfileImageURL == nil {
		return nil, invalid("profile_image_url", domain.ErrInsecureURL)
	}
	found, err := s.skills.CountExisting(ctx, skillIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check skills: %w", err)
	}
	if found != len(skillIDs) {
		return nil, store.ErrSkillNotFound
	}

	var coach *domain.Coach
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		coaches := s.coaches.WithTx(tx)

		c, err := coaches.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		c.ExperienceYears = profile.ExperienceYears
		c.Description = strings.TrimSpace(profile.Description)
		c.ProfileImageURL = profile.ProfileImageURL
		c.UpdatedAt = time.Now().UTC()
		if err := c.Validate(); err != nil {
			return invalid("coach", err)
		}

		if err := coaches.Update(ctx, c); err != nil {
			return err
		}
		if err := coaches.ReplaceSkills(ctx, c.ID, skillIDs); err != nil {
			return err
		}
		c.SkillIDs = skillIDs
		coach = c
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) && !store.IsNotFoundError(err) {
			log.Error("failed to update coach profile",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return nil, err
	}

	log.Info("coach profile updated", slog.String("coach_id", coach.ID.String()))
	return coach, nil
}

func (s *coachServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Coach, error) {
	coach, err := s.coaches.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coach profile: %w", err)
	}
	skillIDs, err := s.coaches.ListSkillIDs(ctx, coach.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coach skills: %w", err)
	}
	coach.SkillIDs = skillIDs
	return coach, nil
}

func (s *coachServiceImpl) ListCoaches(ctx context.Context, page, per int) ([]domain.CoachListing, error) {
	if page < 1 || per < 1 {
		return nil, domain.NewValidationError("page", "page and per must be at least 1", nil)
	}
	if page-1 > math.MaxInt/per {
		return nil, domain.NewValidationError("page", "page is out of range", nil)
	}
	coaches, err := s.coaches.List(ctx, per, (page-1)*per)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}
	return coaches, nil
}

func (s *coachServiceImpl) GetCoach(ctx context.Context, coachID uuid.UUID) (*CoachDetail, error) {
	coach, err := s.coaches.GetByID(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coach: %w", err)
	}
	user, err := s.users.GetByID(ctx, coach.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, store.ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to load coach user: %w", err)
	}
	return &CoachDetail{User: user, Coach: coach}, nil
}

func (s *coachServiceImpl) ListCoachCourses(ctx context.Context, coachID uuid.UUID) ([]*domain.Course, error) {
	coach, err := s.coaches.GetByID(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to load coach: %w", err)
	}
	courses, err := s.courses.ListByCoachUser(ctx, coach.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coach courses: %w", err)
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	return courses, nil
}

// uniqueIDs drops nil and repeated ids, keeping first-seen order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package domain

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCoachID          = errors.New("coach ID cannot be empty")
	ErrEmptyCoachUserID      = errors.New("coach user ID cannot be empty")
	ErrInvalidExperience     = errors.New("experience years cannot be negative")
	ErrEmptyCoachDescription = errors.New("coach description cannot be empty")
	ErrInsecureURL           = errors.New("url must be an https URL")
	ErrEmptySkillIDs         = errors.New("at least one skill is required")
)

// Coach is the coaching profile attached to a user with the COACH role.
type Coach struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	ExperienceYears int         `json:"experience_years"`
	Description     string      `json:"description"`
	ProfileImageURL *string     `json:"profile_image_url"`
	SkillIDs        []uuid.UUID `json:"skill_ids,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewCoach creates a coaching profile for userID.
func NewCoach(userID uuid.UUID, experienceYears int, description string, profileImageURL *string) (*Coach, error) {
	now := time.Now().UTC()
	c := &Coach{
		ID:              uuid.New(),
		UserID:          userID,
		ExperienceYears: experienceYears,
		Description:     strings.TrimSpace(description),
		ProfileImageURL: profileImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks if the Coach has valid data.
func (c *Coach) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCoachID
	}
	if c.UserID == uuid.Nil {
		return ErrEmptyCoachUserID
	}
	if c.ExperienceYears < 0 {
		return ErrInvalidExperience
	}
	if c.Description == "" {
		return ErrEmptyCoachDescription
	}
	if c.ProfileImageURL != nil && !IsHTTPSURL(*c.ProfileImageURL) {
		return ErrInsecureURL
	}
	return nil
}

// CoachListing is the public summary of a coach.
type CoachListing struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// IsHTTPSURL reports whether raw parses as an absolute https URL with a host.
func IsHTTPSURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != ""
}

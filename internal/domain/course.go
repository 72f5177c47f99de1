package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxCourseNameLength is the longest course name the store accepts.
const MaxCourseNameLength = 100

var (
	ErrEmptyCourseID          = errors.New("course ID cannot be empty")
	ErrEmptyCourseUserID      = errors.New("course coach ID cannot be empty")
	ErrEmptyCourseSkillID     = errors.New("course skill ID cannot be empty")
	ErrEmptyCourseName        = errors.New("course name cannot be empty")
	ErrCourseNameTooLong      = errors.New("course name must be at most 100 characters long")
	ErrEmptyCourseDescription = errors.New("course description cannot be empty")
	ErrInvalidCourseSchedule  = errors.New("course must end after it starts")
	ErrInvalidMaxParticipants = errors.New("max participants must be positive")
)

// Course is a session offered by a coach. UserID is the coach's user id.
type Course struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	SkillID         uuid.UUID `json:"skill_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	MaxParticipants int       `json:"max_participants"`
	MeetingURL      string    `json:"meeting_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CourseDetails holds the mutable attributes of a course.
type CourseDetails struct {
	SkillID         uuid.UUID
	Name            string
	Description     string
	StartAt         time.Time
	EndAt           time.Time
	MaxParticipants int
	MeetingURL      string
}

// NewCourse creates a course owned by the coach with user id coachUserID.
func NewCourse(coachUserID uuid.UUID, d CourseDetails) (*Course, error) {
	now := time.Now().UTC()
	c := &Course{
		ID:        uuid.New(),
		UserID:    coachUserID,
		CreatedAt: now,
	}
	c.Apply(d, now)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply overwrites the mutable attributes of c.
func (c *Course) Apply(d CourseDetails, now time.Time) {
	c.SkillID = d.SkillID
	c.Name = strings.TrimSpace(d.Name)
	c.Description = strings.TrimSpace(d.Description)
	c.StartAt = d.StartAt.UTC()
	c.EndAt = d.EndAt.UTC()
	c.MaxParticipants = d.MaxParticipants
	c.MeetingURL = strings.TrimSpace(d.MeetingURL)
	c.UpdatedAt = now.UTC()
}

// Validate checks if the Course has valid data.
func (c *Course) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCourseID
	}
	if c.UserID == uuid.Nil {
		return ErrEmptyCourseUserID
	}
	if c.SkillID == uuid.Nil {
		return ErrEmptyCourseSkillID
	}
	if c.Name == "" {
		return ErrEmptyCourseName
	}
	if utf8.RuneCountInString(c.Name) > MaxCourseNameLength {
		return ErrCourseNameTooLong
	}
	if c.Description == "" {
		return ErrEmptyCourseDescription
	}
	if !c.EndAt.After(c.StartAt) {
		return ErrInvalidCourseSchedule
	}
	if c.MaxParticipants <= 0 {
		return ErrInvalidMaxParticipants
	}
	if !IsHTTPSURL(c.MeetingURL) {
		return ErrInsecureURL
	}
	return nil
}

// CourseListing is a course joined with its coach and skill names.
type CourseListing struct {
	ID              uuid.UUID `json:"id"`
	CoachName       string    `json:"coach_name"`
	SkillName       string    `json:"skill_name"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	MaxParticipants int       `json:"max_participants"`
}

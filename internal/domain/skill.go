package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxSkillNameLength is the longest skill name the store accepts.
const MaxSkillNameLength = 50

var (
	ErrEmptySkillID   = errors.New("skill ID cannot be empty")
	ErrEmptySkillName = errors.New("skill name cannot be empty")
	ErrSkillNameLong  = errors.New("skill name must be at most 50 characters long")
)

// Skill is a coaching discipline a course is taught in.
type Skill struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSkill creates a new Skill.
func NewSkill(name string) (*Skill, error) {
	s := &Skill{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the Skill has valid data.
func (s *Skill) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySkillID
	}
	if s.Name == "" {
		return ErrEmptySkillName
	}
	if utf8.RuneCountInString(s.Name) > MaxSkillNameLength {
		return ErrSkillNameLong
	}
	return nil
}

package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Role is the authorization level of a user.
type Role string

// Known roles. Admin rights are implicit: no route grants or checks them.
const (
	RoleUser  Role = "USER"
	RoleCoach Role = "COACH"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCoach, RoleAdmin:
		return true
	}
	return false
}

// Password and name limits.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 16
	MaxUserNameLength = 50
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUserName       = errors.New("user name cannot be empty")
	ErrUserNameTooLong     = errors.New("user name must be at most 50 characters long")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrInvalidPassword     = errors.New("password must be 8-16 characters and contain a digit, a lower case and an upper case letter")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidRole         = errors.New("invalid user role")
)

// User represents a registered member of the platform.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during signup/password change
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the USER role.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(name, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Role:      RoleUser,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if err := ValidateUserName(u.Name); err != nil {
		return err
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	if u.Password != "" {
		return ValidatePassword(u.Password)
	}
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// IsCoach reports whether the user has been promoted to coach.
func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

// ValidateUserName checks that a display name is present and not too long.
func ValidateUserName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyUserName
	}
	if utf8.RuneCountInString(name) > MaxUserNameLength {
		return ErrUserNameTooLong
	}
	return nil
}

// ValidatePassword enforces the password rule: 8 to 16 characters containing
// at least one digit, one lower case and one upper case ASCII letter.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength || n > MaxPasswordLength {
		return ErrInvalidPassword
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case unicode.IsSpace(r):
			return ErrInvalidPassword
		}
	}

	if !hasDigit || !hasLower || !hasUpper {
		return ErrInvalidPassword
	}
	return nil
}

// validateEmailFormat performs a basic structural check: a non-empty local
// part, an @, and a dotted domain.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return false
	}

	domainPart := email[at+1:]
	dot := strings.IndexByte(domainPart, '.')
	if dot <= 0 || strings.HasSuffix(domainPart, ".") {
		return false
	}

	return !strings.ContainsAny(email, " \t\r\n")
}

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrUserNotFound", ErrUserNotFound, true},
		{"wrapped ErrCourseNotFound", fmt.Errorf("lookup: %w", ErrCourseNotFound), true},
		{"ErrBookingNotFound", ErrBookingNotFound, true},
		{"duplicate is not not-found", ErrEmailExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrActiveBookingExists)))
	assert.True(t, IsDuplicateError(ErrSkillExists))
	assert.False(t, IsDuplicateError(ErrSkillNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("course_booking", "cancel", "update failed", cause)

	assert.Equal(t, "cancel operation on course_booking failed: update failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("user", "create", "invalid", nil)
	assert.Equal(t, "create operation on user failed: invalid", bare.Error())
}

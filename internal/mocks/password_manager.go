package mocks

import (
	"github.com/livefit/livefit-api/internal/service/auth"
)

// MockPasswordManager implements auth.PasswordManager for testing. Hashes
// are the plaintext prefixed with "hashed:" unless HashFn is set.
type MockPasswordManager struct {
	// HashFn allows for custom hashing in tests
	HashFn func(password string) (string, error)

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith stores the arguments passed to Compare for verification
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var _ auth.PasswordManager = (*MockPasswordManager)(nil)

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordManager) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordManager) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return auth.ErrPasswordMismatch
}

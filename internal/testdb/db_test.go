package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		primary  string
		fallback string
		want     string
	}{
		{"none", "", "", ""},
		{"database url wins", "postgres://a/db", "postgres://b/db", "postgres://a/db"},
		{"fallback", "", "postgres://b/db", "postgres://b/db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", tt.primary)
			t.Setenv("LIVEFIT_TEST_DB_URL", tt.fallback)

			assert.Equal(t, tt.want, GetTestDatabaseURL())
			assert.Equal(t, tt.want == "", ShouldSkipDatabaseTest())
		})
	}
}

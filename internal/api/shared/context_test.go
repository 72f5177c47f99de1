package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)

	traceID := GetTraceID(ctxWithTrace)
	assert.Len(t, traceID, 32, "Expected trace ID length to be 32 hex characters (16 bytes)")
	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123) // Not a string

	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID when context has invalid type")
}

func TestGenerateTraceID(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]bool, iterations)

	for i := 0; i < iterations; i++ {
		id := generateTraceID()
		_, err := hex.DecodeString(id)
		require.NoError(t, err, "Expected valid hex string")
		assert.Len(t, id, 32)
		assert.False(t, seen[id], "Expected all trace IDs to be unique")
		seen[id] = true
	}
}

func TestGenerateFallbackTraceID(t *testing.T) {
	id := generateFallbackTraceID()

	assert.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
}

func TestWithUser(t *testing.T) {
	userID := uuid.New()
	ctx := WithUser(context.Background(), userID, domain.RoleCoach)

	gotID, ok := UserID(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)

	role, ok := UserRole(ctx)
	require.True(t, ok)
	assert.Equal(t, domain.RoleCoach, role)

	_, ok = UserID(context.Background())
	assert.False(t, ok)

	_, ok = UserID(WithUser(context.Background(), uuid.Nil, domain.RoleUser))
	assert.False(t, ok, "nil user id is not an authenticated user")
}

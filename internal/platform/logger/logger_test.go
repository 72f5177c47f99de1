package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/livefit/livefit-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := logger.New(&buf, tt.level)

			l.Debug("debug message")
			assert.Equal(t, tt.debugSeen, bytes.Contains(buf.Bytes(), []byte("debug message")))

			buf.Reset()
			l.Info("info message")
			assert.Equal(t, tt.infoSeen, bytes.Contains(buf.Bytes(), []byte("info message")))
		})
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(&buf, "info")
	l.Info("booking created", slog.String("course_id", "abc"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "booking created", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "abc", entry["course_id"])
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	scoped := logger.New(&buf, "debug").With(slog.String("trace_id", "t-1"))
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	ctx := logger.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, logger.FromContext(ctx))
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))

	// A nil logger never replaces the context value.
	assert.Equal(t, ctx, logger.WithLogger(ctx, nil))
}

func TestParseLevel(t *testing.T) {
	lvl, ok := logger.ParseLevel(" Error ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelError, lvl)

	lvl, ok = logger.ParseLevel("fatal")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, lvl)
}

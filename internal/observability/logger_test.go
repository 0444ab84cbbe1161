package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancyJGLisboa/agri-feeders/internal/config"
)

func TestNewLogger_Levels(t *testing.T) {
	cases := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"nonsense", slog.LevelInfo, slog.LevelDebug},
	}
	for _, tc := range cases {
		logger := NewLogger(&config.Config{LogLevel: tc.level, LogFormat: "text"})
		require.NotNil(t, logger)
		assert.True(t, logger.Enabled(context.Background(), tc.enabled), "level %s", tc.level)
		assert.False(t, logger.Enabled(context.Background(), tc.muted), "level %s", tc.level)
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	logger := NewLogger(&config.Config{LogLevel: "info", LogFormat: "json"})
	require.NotNil(t, logger)
	_, ok := logger.Handler().(*slog.JSONHandler)
	assert.True(t, ok)
}

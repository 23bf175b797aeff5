package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expectedLogger := NewLogger(DefaultConfig())
		ctx := ContextWithLogger(t.Context(), expectedLogger)

		actualLogger := FromContext(ctx)

		require.NotNil(t, actualLogger)
		assert.Equal(t, expectedLogger, actualLogger)
	})

	t.Run("Should return default logger when no logger in context", func(t *testing.T) {
		logger := FromContext(t.Context())

		require.NotNil(t, logger)
		logger.Info("test message from default logger")
	})
}

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	t.Run("Should convert all log levels to charm log levels correctly", func(t *testing.T) {
		testCases := []struct {
			level    LogLevel
			expected int
		}{
			{DebugLevel, -4},
			{InfoLevel, 0},
			{WarnLevel, 4},
			{ErrorLevel, 8},
			{LogLevel("unknown"), 0},
		}
		for _, tc := range testCases {
			assert.Equal(t, tc.expected, int(tc.level.ToCharmlogLevel()), "level %s", tc.level)
		}
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write structured output to the configured writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&Config{
			Level:  InfoLevel,
			Output: &buf,
		})

		logger.Info("dataset loaded", "rows", 42)

		out := buf.String()
		assert.Contains(t, out, "dataset loaded")
		assert.Contains(t, out, "rows")
	})

	t.Run("Should suppress messages below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&Config{
			Level:  WarnLevel,
			Output: &buf,
		})

		logger.Debug("should not appear")
		logger.Info("should not appear either")
		logger.Warn("should appear")

		out := buf.String()
		assert.NotContains(t, out, "should not appear")
		assert.Contains(t, out, "should appear")
	})

	t.Run("Should emit JSON when configured", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&Config{
			Level:  InfoLevel,
			Output: &buf,
			JSON:   true,
		})

		logger.Info("json message", "key", "value")

		out := strings.TrimSpace(buf.String())
		assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
		assert.Contains(t, out, `"key":"value"`)
	})

	t.Run("Should carry With fields on child loggers", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&Config{Level: InfoLevel, Output: &buf})

		child := logger.With("dataset", "TheFinAI/en-fpb")
		child.Info("row processed")

		out := buf.String()
		assert.Contains(t, out, "TheFinAI/en-fpb")
	})
}

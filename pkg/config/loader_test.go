package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should load built-in defaults", func(t *testing.T) {
		cfg, err := NewService().Load(t.Context())
		require.NoError(t, err)

		assert.Equal(t, "https://datasets-server.huggingface.co", cfg.HuggingFace.BaseURL)
		assert.Equal(t, "default", cfg.HuggingFace.ConfigName)
		assert.Equal(t, 100, cfg.HuggingFace.PageSize)
		assert.Equal(t, 30*time.Second, cfg.HuggingFace.Timeout)
		assert.Equal(t, "info", cfg.Runtime.LogLevel)
	})

	t.Run("Should apply environment overrides from env tags", func(t *testing.T) {
		t.Setenv("HF_TOKEN", "hf_test_token")
		t.Setenv("HF_PAGE_SIZE", "25")
		t.Setenv("RUNTIME_LOG_LEVEL", "debug")

		cfg, err := NewService().Load(t.Context())
		require.NoError(t, err)

		assert.Equal(t, "hf_test_token", cfg.HuggingFace.Token.Value())
		assert.Equal(t, 25, cfg.HuggingFace.PageSize)
		assert.Equal(t, "debug", cfg.Runtime.LogLevel)
	})

	t.Run("Should parse duration overrides", func(t *testing.T) {
		t.Setenv("HF_TIMEOUT", "90s")

		cfg, err := NewService().Load(t.Context())
		require.NoError(t, err)

		assert.Equal(t, 90*time.Second, cfg.HuggingFace.Timeout)
	})

	t.Run("Should reject out-of-range page size", func(t *testing.T) {
		t.Setenv("HF_PAGE_SIZE", "500")

		_, err := NewService().Load(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("Should reject unknown log level", func(t *testing.T) {
		t.Setenv("RUNTIME_LOG_LEVEL", "verbose")

		_, err := NewService().Load(t.Context())
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Should reject nil configuration", func(t *testing.T) {
		svc := NewService()
		err := svc.Validate(nil)
		require.Error(t, err)
	})

	t.Run("Should accept default configuration", func(t *testing.T) {
		svc := NewService()
		require.NoError(t, svc.Validate(Default()))
	})
}

func TestFromContext(t *testing.T) {
	t.Run("Should return config from context when present", func(t *testing.T) {
		cfg := Default()
		ctx := ContextWithConfig(t.Context(), cfg)

		assert.Same(t, cfg, FromContext(ctx))
	})

	t.Run("Should fall back to default config when none attached", func(t *testing.T) {
		cfg := FromContext(t.Context())

		require.NotNil(t, cfg)
		assert.NotEmpty(t, cfg.HuggingFace.BaseURL)
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("SESSION_SIGNING_KEY", "test-key")
	t.Setenv("RT_PASSPHRASE", "rahasia")
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, []byte("test-key"), cfg.SessionSigningKey)
		assert.Equal(t, "rahasia", cfg.Passphrase)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
		assert.Equal(t, DefaultAuthorityName, cfg.AuthorityName)
		assert.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
		assert.Equal(t, DefaultDraftTimeout, cfg.DraftTimeout)
		assert.False(t, cfg.DraftDiscardStale)
		assert.True(t, cfg.SeedDemoData)
	})

	t.Run("production does not seed by default", func(t *testing.T) {
		setRequired(t)
		t.Setenv("ENVIRONMENT", "prod")

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.IsProd())
		assert.False(t, cfg.SeedDemoData)
	})

	t.Run("overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DRAFT_TIMEOUT", "5s")
		t.Setenv("DRAFT_DISCARD_STALE", "true")
		t.Setenv("AUTHORITY_NAME", "Bu RT Sari")

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.DraftTimeout)
		assert.True(t, cfg.DraftDiscardStale)
		assert.Equal(t, "Bu RT Sari", cfg.AuthorityName)
	})

	t.Run("missing signing key", func(t *testing.T) {
		t.Setenv("SESSION_SIGNING_KEY", "")
		t.Setenv("RT_PASSPHRASE", "rahasia")

		_, err := LoadFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_SIGNING_KEY environment variable is required")
	})

	t.Run("missing passphrase source", func(t *testing.T) {
		t.Setenv("SESSION_SIGNING_KEY", "test-key")
		t.Setenv("RT_PASSPHRASE", "")
		t.Setenv("RT_SECRET_ID", "")

		_, err := LoadFromEnv()
		assert.Error(t, err)
	})

	t.Run("invalid duration", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DRAFT_TIMEOUT", "soon")

		_, err := LoadFromEnv()
		assert.Error(t, err)
	})
}

func TestApplySecret(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "from-env"}
	cfg.ApplySecret("from-secret", "secret-key")

	assert.Equal(t, "from-secret", cfg.Passphrase)
	assert.Equal(t, "from-env", cfg.GeminiAPIKey)
}

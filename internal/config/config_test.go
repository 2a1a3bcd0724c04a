package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEBUG", "true")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("SMTP_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.LLMEnabled())
	assert.False(t, cfg.MailEnabled())
}

func TestLoad_RequiresSecretInProduction(t *testing.T) {
	t.Setenv("DEBUG", "false")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DEBUG", "false")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("LLM_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, 3*time.Second, cfg.LLMTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.RedisEnabled())
}

func TestGetEnvHelpers_InvalidFallBack(t *testing.T) {
	t.Setenv("X_INT", "ten")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, getEnvInt("X_INT", 7))
	assert.True(t, getEnvBool("X_BOOL", true))
	assert.Equal(t, time.Second, getEnvDuration("X_DUR", time.Second))
}

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "log", cfg.MailDriver)
	assert.Empty(t, cfg.RedisURL)
	assert.True(t, cfg.IsDevelopment())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("GO_ENV", "production")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("RATE_LIMIT_RPS", "5.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5.5, cfg.RateLimitRPS)
}

func TestLoadConfig_BadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "not-a-port")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			HTTPPort:       8080,
			JWTSecret:      testSecret,
			LogLevel:       "info",
			LogFormat:      "json",
			MailDriver:     "smtp",
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("ShortSecret", func(t *testing.T) {
		cfg := valid()
		cfg.JWTSecret = "short"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("BadPort", func(t *testing.T) {
		cfg := valid()
		cfg.HTTPPort = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		cfg := valid()
		cfg.LogLevel = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("BadMailDriver", func(t *testing.T) {
		cfg := valid()
		cfg.MailDriver = "pigeon"
		assert.Error(t, cfg.Validate())
	})

	t.Run("CollectsAllErrors", func(t *testing.T) {
		cfg := valid()
		cfg.HTTPPort = -1
		cfg.LogFormat = "xml"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, 2, strings.Count(err.Error(), ";")+1)
	})
}

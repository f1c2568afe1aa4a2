package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:          "5000",
			MongoURI:      "mongodb://localhost:27017",
			JWTSecret:     "a-test-secret-that-is-long-enough-123456",
			JWTTTLMinutes: 10000,
			Env:           "development",
		}
	}

	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := base()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing mongo uri", func(t *testing.T) {
		cfg := base()
		cfg.MongoURI = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive token ttl", func(t *testing.T) {
		cfg := base()
		cfg.JWTTTLMinutes = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("default secret rejected in production", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("short secret rejected in production", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("strong production config accepted", func(t *testing.T) {
		cfg := base()
		cfg.Env = "production"
		assert.NoError(t, cfg.Validate())
	})
}

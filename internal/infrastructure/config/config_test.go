package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	envKeys := []string{
		"SHIV_APP_NAME",
		"SHIV_APP_ENV",
		"SHIV_APP_PORT",
		"SHIV_LOG_LEVEL",
		"SHIV_LOG_FORMAT",
		"SHIV_HTTP_READ_TIMEOUT",
		"SHIV_HTTP_CORS_ALLOW_ORIGINS",
	}
	original := make(map[string]string, len(envKeys))
	for _, k := range envKeys {
		original[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()
	clearEnv := func() {
		for _, k := range envKeys {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shivaccounts-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, ":8080", cfg.Addr())
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "stdout", cfg.Log.Output)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHIV_APP_PORT", "9090")
		os.Setenv("SHIV_LOG_LEVEL", "debug")
		os.Setenv("SHIV_HTTP_READ_TIMEOUT", "30s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 30*time.Second, cfg.HTTP.ReadTimeout)
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHIV_LOG_FORMAT", "xml")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("production requires json logs", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHIV_APP_ENV", "production")
		os.Setenv("SHIV_LOG_FORMAT", "console")

		_, err := Load()
		assert.Error(t, err)

		os.Setenv("SHIV_LOG_FORMAT", "json")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("cors defaults and production wildcard rule", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
		assert.Contains(t, cfg.HTTP.CORSAllowMethods, "OPTIONS")
		assert.Equal(t, 12*time.Hour, cfg.HTTP.CORSMaxAge)

		os.Setenv("SHIV_APP_ENV", "production")
		os.Setenv("SHIV_LOG_FORMAT", "json")
		os.Setenv("SHIV_HTTP_CORS_ALLOW_ORIGINS", "*")
		_, err = Load()
		assert.Error(t, err)
	})
}

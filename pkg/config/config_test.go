package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-web-contact/pkg/fetch"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	assert.Equal(t, fetch.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, DefaultPolitenessDelayMs, cfg.PolitenessDelayMs)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 2*time.Second, cfg.PolitenessDelay())
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("partial file overrides defaults", func(t *testing.T) {
		path := writeFile(t, "timeout_seconds: 5\npoliteness_delay_ms: 0\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.TimeoutSeconds)
		assert.Equal(t, 0, cfg.PolitenessDelayMs)
		assert.Equal(t, fetch.DefaultUserAgent, cfg.UserAgent)
		assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	})

	t.Run("empty file returns defaults", func(t *testing.T) {
		cfg, err := Load(writeFile(t, ""))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(writeFile(t, "retries: 3\n"))
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := Load(writeFile(t, "timeout_seconds: 0\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout_seconds")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := Config{TimeoutSeconds: -1, PolitenessDelayMs: -5}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_seconds")
	assert.Contains(t, err.Error(), "politeness_delay_ms")
	assert.Contains(t, err.Error(), "user_agent")
	assert.Contains(t, err.Error(), "output_file")
}

func TestFetchConfig(t *testing.T) {
	cfg := Default()
	cfg.TimeoutSeconds = 3
	fc := cfg.FetchConfig()
	assert.Equal(t, 3*time.Second, fc.Timeout)
	assert.Equal(t, cfg.UserAgent, fc.UserAgent)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, DefaultTargetURL, cfg.TargetURL)
	assert.Equal(t, "firefox", cfg.Browser)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 1920, cfg.ViewportWidth)
	assert.Equal(t, 1080, cfg.ViewportHeight)
	assert.Equal(t, 60*time.Second, cfg.LaunchTimeout)
	assert.Equal(t, 5*time.Second, cfg.StepTimeout)
	assert.Equal(t, int64(10), cfg.MaxSessions)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("TARGET_URL", "https://staging.example.com")
	t.Setenv("BROWSER", "chromium")
	t.Setenv("HEADLESS", "true")
	t.Setenv("LAUNCH_TIMEOUT_SECONDS", "120")
	t.Setenv("MAX_SESSIONS", "3")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "https://staging.example.com", cfg.TargetURL)
	assert.Equal(t, "chromium", cfg.Browser)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 120*time.Second, cfg.LaunchTimeout)
	assert.Equal(t, int64(3), cfg.MaxSessions)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("MAX_SESSIONS", "not-a-number")
	t.Setenv("LAUNCH_TIMEOUT_SECONDS", "-5")
	t.Setenv("HEADLESS", "maybe")

	cfg := FromEnv()

	assert.Equal(t, int64(10), cfg.MaxSessions)
	assert.Equal(t, 60*time.Second, cfg.LaunchTimeout)
	assert.False(t, cfg.Headless)
}

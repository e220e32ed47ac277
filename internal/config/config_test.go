package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Redaction)
	assert.Equal(t, 8000, cfg.Skills.MaxTokens)
	assert.True(t, cfg.Skills.Watch)
	assert.True(t, cfg.Tools.ValidateParams)
	assert.False(t, cfg.Tracing.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "invalid logging level",
		},
		{
			name:    "non-positive token budget",
			mutate:  func(c *Config) { c.Skills.MaxTokens = 0 },
			wantErr: "skills.max_tokens",
		},
		{
			name:    "bad cron spec",
			mutate:  func(c *Config) { c.Skills.CacheResetCron = "every day" },
			wantErr: "cache_reset_cron",
		},
		{
			name:    "sample ratio out of range",
			mutate:  func(c *Config) { c.Tracing.SampleRatio = 1.5 },
			wantErr: "sample_ratio",
		},
		{
			name: "tracing without service name",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.ServiceName = ""
			},
			wantErr: "service_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}

	t.Run("valid cron spec", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Skills.CacheResetCron = "0 */6 * * *"
		assert.NoError(t, cfg.Validate())
	})
}

func TestProviderEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Catalog.DisabledProviders = []string{"Memory"}

	assert.False(t, cfg.ProviderEnabled("memory"))
	assert.True(t, cfg.ProviderEnabled("utilities"))
}

func TestConfigStringMasksCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Credentials.GSTAPIKey = "gst-live-secret"

	out := cfg.String()
	assert.False(t, strings.Contains(out, "gst-live-secret"))
	assert.Contains(t, out, "***")
	assert.Equal(t, "gst-live-secret", cfg.Credentials.GSTAPIKey)
}

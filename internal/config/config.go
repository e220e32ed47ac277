package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Config represents the toolhub configuration
type Config struct {
	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Catalog loading
	Catalog CatalogConfig `json:"catalog" mapstructure:"catalog"`

	// Skill documents
	Skills SkillsConfig `json:"skills" mapstructure:"skills"`

	// Tool execution
	Tools ToolsConfig `json:"tools" mapstructure:"tools"`

	// Metrics endpoint
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`

	// Tracing
	Tracing TracingConfig `json:"tracing" mapstructure:"tracing"`

	// Provider credentials
	Credentials CredentialsConfig `json:"credentials" mapstructure:"credentials"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	File      string `json:"file" mapstructure:"file"`
	Console   bool   `json:"console" mapstructure:"console"`
	Pretty    bool   `json:"pretty" mapstructure:"pretty"`
	Redaction bool   `json:"redaction" mapstructure:"redaction"`
}

// CatalogConfig controls which providers take part in catalog loading
type CatalogConfig struct {
	DisabledProviders []string `json:"disabled_providers" mapstructure:"disabled_providers"`
	DatabasePath      string   `json:"database_path" mapstructure:"database_path"` // sqlite file for resource-backed providers
}

// SkillsConfig holds skill loader configuration
type SkillsConfig struct {
	Dir            string `json:"dir" mapstructure:"dir"`
	TablesFile     string `json:"tables_file" mapstructure:"tables_file"` // optional override of the built-in selection tables
	MaxTokens      int    `json:"max_tokens" mapstructure:"max_tokens"`
	Watch          bool   `json:"watch" mapstructure:"watch"`
	CacheResetCron string `json:"cache_reset_cron" mapstructure:"cache_reset_cron"`
}

// ToolsConfig holds tool execution configuration
type ToolsConfig struct {
	ValidateParams bool `json:"validate_params" mapstructure:"validate_params"`
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// TracingConfig holds OpenTelemetry configuration
type TracingConfig struct {
	Enabled     bool    `json:"enabled" mapstructure:"enabled"`
	ServiceName string  `json:"service_name" mapstructure:"service_name"`
	SampleRatio float64 `json:"sample_ratio" mapstructure:"sample_ratio"`
}

// CredentialsConfig holds provider credentials
type CredentialsConfig struct {
	GSTAPIKey string `json:"gst_api_key" mapstructure:"gst_api_key"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:     "info",
			Console:   true,
			Pretty:    true,
			Redaction: true,
		},
		Catalog: CatalogConfig{
			DisabledProviders: []string{},
		},
		Skills: SkillsConfig{
			MaxTokens: 8000,
			Watch:     true,
		},
		Tools: ToolsConfig{
			ValidateParams: true,
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "toolhub",
			SampleRatio: 1,
		},
	}
}

// String returns a JSON representation of the config with credentials masked
func (c *Config) String() string {
	masked := *c
	if masked.Credentials.GSTAPIKey != "" {
		masked.Credentials.GSTAPIKey = "***"
	}
	data, _ := json.MarshalIndent(masked, "", "  ")
	return string(data)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	if c.Skills.MaxTokens <= 0 {
		return fmt.Errorf("skills.max_tokens must be positive, got %d", c.Skills.MaxTokens)
	}

	if c.Skills.CacheResetCron != "" {
		if _, err := cron.ParseStandard(c.Skills.CacheResetCron); err != nil {
			return fmt.Errorf("invalid skills.cache_reset_cron %q: %w", c.Skills.CacheResetCron, err)
		}
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be within [0, 1], got %v", c.Tracing.SampleRatio)
	}

	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.service_name is required when tracing is enabled")
	}

	return nil
}

// ProviderEnabled reports whether a provider was not disabled in config
func (c *Config) ProviderEnabled(name string) bool {
	for _, disabled := range c.Catalog.DisabledProviders {
		if strings.EqualFold(disabled, name) {
			return false
		}
	}
	return true
}

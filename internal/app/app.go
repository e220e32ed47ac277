// Package app wires configuration, providers, the tool registry and the skill
// loader into one explicitly constructed context object.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ankr/toolhub/internal/config"
	"github.com/ankr/toolhub/internal/metrics"
	"github.com/ankr/toolhub/internal/tracing"
	"github.com/ankr/toolhub/pkg/catalog"
	"github.com/ankr/toolhub/pkg/providers"
	"github.com/ankr/toolhub/pkg/skills"
	"github.com/ankr/toolhub/pkg/toolexecutor"
)

// App holds every component a command needs
type App struct {
	Config   *config.Config
	Metrics  *metrics.Metrics
	Registry *toolexecutor.Registry
	Executor *toolexecutor.Executor
	Catalog  catalog.Catalog
	Selector *skills.Selector
	Skills   *skills.Loader

	providers      *providers.Set
	tracingEnabled bool
}

// Option customizes construction, mainly for tests
type Option func(*options)

type options struct {
	providers []catalog.Provider
}

// WithProviders replaces the reference providers
func WithProviders(p ...catalog.Provider) Option {
	return func(o *options) { o.providers = p }
}

// New builds the app from cfg and populates the registry from the catalog
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		Config:  cfg,
		Metrics: metrics.NewMetrics(),
	}

	if cfg.Tracing.Enabled {
		if err := tracing.InitOpenTelemetry(cfg.Tracing.ServiceName, cfg.Tracing.SampleRatio); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize tracing")
		} else {
			a.tracingEnabled = true
		}
	}

	provs := o.providers
	if provs == nil {
		a.providers = providers.Default(providers.Options{
			DatabasePath: cfg.Catalog.DatabasePath,
			GSTAPIKey:    cfg.Credentials.GSTAPIKey,
			Enabled:      cfg.ProviderEnabled,
		})
		provs = a.providers.Providers
	}

	a.Registry = toolexecutor.NewRegistry()
	a.Executor = toolexecutor.NewExecutor(a.Registry,
		toolexecutor.WithRecorder(a.Metrics),
		toolexecutor.WithParamValidation(cfg.Tools.ValidateParams),
	)
	a.Catalog = catalog.NewLoader(provs, catalog.WithRecorder(a.Metrics)).Populate(ctx, a.Registry)

	tables := skills.DefaultTables()
	if cfg.Skills.TablesFile != "" {
		loaded, err := skills.LoadTables(cfg.Skills.TablesFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		tables = loaded
	}
	a.Selector = skills.NewSelector(tables)
	a.Skills = skills.NewLoader(skills.NewStore(cfg.Skills.Dir), skills.WithRecorder(a.Metrics))

	log.Debug().
		Str("tier", string(a.Catalog.Tier)).
		Int("tools", a.Registry.Count()).
		Str("skills_dir", cfg.Skills.Dir).
		Msg("App initialized")

	return a, nil
}

// SelectAndLoad picks skills for a product and query and loads them within maxTokens.
// A non-positive maxTokens uses the configured default.
func (a *App) SelectAndLoad(product, query string, explicit []string, maxTokens int) []skills.SkillContent {
	if maxTokens <= 0 {
		maxTokens = a.Config.Skills.MaxTokens
	}
	return a.Skills.LoadBudgeted(a.Selector.Select(product, query, explicit), maxTokens)
}

// Close releases provider resources and flushes traces
func (a *App) Close() error {
	var errs []error
	if a.providers != nil {
		if err := a.providers.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close providers: %w", err))
		}
	}
	if a.tracingEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.ShutdownOpenTelemetry(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down tracing: %w", err))
		}
	}
	return errors.Join(errs...)
}

package catalog

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ankr/toolhub/internal/tracing"
	"github.com/ankr/toolhub/pkg/toolexecutor"
)

const tracerName = "github.com/ankr/toolhub/pkg/catalog"

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithStrategies replaces the default tier chain
func WithStrategies(strategies ...Strategy) LoaderOption {
	return func(l *Loader) { l.strategies = strategies }
}

// WithRecorder sets the metrics recorder
func WithRecorder(rec Recorder) LoaderOption {
	return func(l *Loader) { l.recorder = rec }
}

// WithClock overrides the LoadedAt time source
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) { l.now = now }
}

// Loader builds catalogs by walking its tiers in order
type Loader struct {
	strategies []Strategy
	recorder   Recorder
	now        func() time.Time
}

// NewLoader creates a loader with the full, fallback-default and fallback-static tiers
func NewLoader(providers []Provider, opts ...LoaderOption) *Loader {
	l := &Loader{
		strategies: []Strategy{
			FullSetup(providers),
			ResourceFreeSetup(providers),
			StaticFallback(),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the catalog of the first tier that succeeds.
// It never returns an error; when every tier fails the catalog is empty with TierNone.
func (l *Loader) Load(ctx context.Context) Catalog {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.load")
	defer span.End()

	for i, s := range l.strategies {
		start := time.Now()
		defs, err := runStrategy(ctx, s)
		if err != nil {
			log.Warn().
				Str("tier", string(s.Tier())).
				Err(err).
				Msg("Catalog tier failed, falling back")
			span.AddEvent("tier failed", trace.WithAttributes(
				attribute.String("catalog.tier", string(s.Tier())),
				attribute.String("error", err.Error()),
			))
			continue
		}

		cat := Catalog{
			Tools:    defs,
			LoadedAt: l.now(),
			Tier:     s.Tier(),
		}

		event := log.Info()
		if i > 0 {
			event = log.Warn()
		}
		event.
			Str("tier", string(cat.Tier)).
			Int("tools", len(defs)).
			Dur("duration", time.Since(start)).
			Msg("Catalog loaded")

		span.SetAttributes(
			attribute.String("catalog.tier", string(cat.Tier)),
			attribute.Int("catalog.tools", len(defs)),
		)
		l.observe(cat)
		return cat
	}

	log.Error().Int("tiers", len(l.strategies)).Msg("Every catalog tier failed, catalog is empty")
	span.SetStatus(codes.Error, "every catalog tier failed")

	cat := Catalog{
		Tools:    []toolexecutor.ToolDefinition{},
		LoadedAt: l.now(),
		Tier:     TierNone,
	}
	l.observe(cat)
	return cat
}

// Populate loads the catalog and registers every tool in registry.
// Tools the registry rejects are logged and left out of the returned catalog.
func (l *Loader) Populate(ctx context.Context, registry *toolexecutor.Registry) Catalog {
	cat := l.Load(ctx)

	registered := make([]toolexecutor.ToolDefinition, 0, len(cat.Tools))
	for _, def := range cat.Tools {
		if err := registry.Register(def); err != nil {
			log.Warn().Str("tool", def.Name).Err(err).Msg("Failed to register catalog tool")
			continue
		}
		registered = append(registered, def)
	}
	cat.Tools = registered

	log.Info().
		Str("tier", string(cat.Tier)).
		Int("registered", len(registered)).
		Int("total", registry.Count()).
		Msg("Registry populated from catalog")

	return cat
}

func (l *Loader) observe(cat Catalog) {
	if l.recorder != nil {
		l.recorder.ObserveCatalogLoad(string(cat.Tier), len(cat.Tools))
	}
}

// runStrategy keeps a panicking strategy from escaping Load
func runStrategy(ctx context.Context, s Strategy) (defs []toolexecutor.ToolDefinition, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("tier", string(s.Tier())).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Recovered panic in catalog tier")
			defs = nil
			err = fmt.Errorf("%w: tier %s panicked: %v", ErrProviderSetup, s.Tier(), rec)
		}
	}()

	defs, err = s.Setup(ctx)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, ErrEmptyTier
	}
	return defs, nil
}

package catalog

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/ankr/toolhub/pkg/toolexecutor"
)

// providerStrategy runs provider setup hooks. With resourceFree set, providers
// that need external resources are left out.
type providerStrategy struct {
	tier         Tier
	providers    []Provider
	resourceFree bool
}

// FullSetup returns the tier that invokes every provider
func FullSetup(providers []Provider) Strategy {
	return &providerStrategy{tier: TierFull, providers: providers}
}

// ResourceFreeSetup returns the tier that invokes only providers needing no external resources
func ResourceFreeSetup(providers []Provider) Strategy {
	return &providerStrategy{tier: TierDefault, providers: providers, resourceFree: true}
}

func (s *providerStrategy) Tier() Tier {
	return s.tier
}

// Setup fails as a whole if any included provider fails; a single malformed tool is only skipped.
func (s *providerStrategy) Setup(ctx context.Context) ([]toolexecutor.ToolDefinition, error) {
	defs := []toolexecutor.ToolDefinition{}

	for _, p := range s.providers {
		if s.resourceFree && p.RequiresResources() {
			log.Debug().Str("provider", p.Name()).Str("tier", string(s.tier)).Msg("Skipping resource-dependent provider")
			continue
		}

		raws, err := setupProvider(ctx, p)
		if err != nil {
			return nil, err
		}

		for _, raw := range raws {
			def, err := normalizeTool(raw, unavailableHandler(raw.Name, p.Name()))
			if err != nil {
				log.Warn().Str("provider", p.Name()).Err(err).Msg("Skipping malformed tool")
				continue
			}
			defs = append(defs, def)
		}

		log.Debug().
			Str("provider", p.Name()).
			Int("tools", len(raws)).
			Str("tier", string(s.tier)).
			Msg("Provider setup completed")
	}

	if len(defs) == 0 {
		return nil, ErrEmptyTier
	}
	return defs, nil
}

// setupProvider runs one setup hook, converting a panic into ErrProviderSetup
func setupProvider(ctx context.Context, p Provider) (raws []RawTool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Str("provider", p.Name()).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Recovered panic in provider setup")
			raws = nil
			err = fmt.Errorf("%w: provider %s panicked: %v", ErrProviderSetup, p.Name(), rec)
		}
	}()

	raws, err = p.Setup(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: provider %s: %w", ErrProviderSetup, p.Name(), err)
	}
	return raws, nil
}

// unavailableHandler answers calls to tools whose integration is not live in this process
func unavailableHandler(tool, source string) toolexecutor.Handler {
	return toolexecutor.HandlerFunc(func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return nil, toolexecutor.Unconfigured("%s is listed by %s but its integration is not loaded; configure the provider and reload the catalog", tool, source)
	})
}

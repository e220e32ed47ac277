package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ankr/toolhub/pkg/toolexecutor"
)

//go:embed static_catalog.json
var staticCatalogJSON []byte

type staticEntry struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Parameters  json.RawMessage `json:"parameters"`
}

type staticStrategy struct {
	data []byte
}

// StaticFallback returns the last-resort tier backed by the embedded catalog.
// Its tools are listed for discovery; calling one reports it as unconfigured.
func StaticFallback() Strategy {
	return &staticStrategy{data: staticCatalogJSON}
}

func (s *staticStrategy) Tier() Tier {
	return TierStatic
}

func (s *staticStrategy) Setup(ctx context.Context) ([]toolexecutor.ToolDefinition, error) {
	var entries []staticEntry
	if err := json.Unmarshal(s.data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode static catalog: %w", err)
	}

	defs := make([]toolexecutor.ToolDefinition, 0, len(entries))
	for _, e := range entries {
		raw := RawTool{
			Name:        e.Name,
			Description: e.Description,
			Category:    e.Category,
			Parameters:  e.Parameters,
		}
		def, err := normalizeTool(raw, unavailableHandler(e.Name, "the static catalog"))
		if err != nil {
			log.Warn().Err(err).Msg("Skipping malformed static catalog entry")
			continue
		}
		defs = append(defs, def)
	}

	if len(defs) == 0 {
		return nil, ErrEmptyTier
	}
	return defs, nil
}

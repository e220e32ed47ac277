package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ankr/toolhub/pkg/toolexecutor"
)

// Tier names the strategy that produced a catalog
type Tier string

const (
	TierFull    Tier = "full"
	TierDefault Tier = "fallback-default"
	TierStatic  Tier = "fallback-static"
	TierNone    Tier = "none"
)

var (
	// ErrProviderSetup is returned when a provider's setup hook fails or panics
	ErrProviderSetup = errors.New("provider setup failed")

	// ErrEmptyTier is returned when a tier completes without producing any tool
	ErrEmptyTier = errors.New("tier produced no tools")

	// ErrInvalidParameters is returned for parameter metadata that is neither a list nor a mapping
	ErrInvalidParameters = errors.New("invalid parameter metadata")
)

// RawTool is a tool as declared by a provider, before normalization.
// Parameters may be a JSON array of parameter objects, a JSON object keyed by
// parameter name, or a JSON Schema object with "properties".
type RawTool struct {
	Name        string
	Description string
	Category    string
	Parameters  json.RawMessage
	Handler     toolexecutor.Handler
}

// Provider contributes tools to the catalog
type Provider interface {
	// Name identifies the provider in logs
	Name() string

	// RequiresResources reports whether Setup needs external resources such as a database.
	// Such providers are skipped by the fallback-default tier.
	RequiresResources() bool

	// Setup returns the provider's tools
	Setup(ctx context.Context) ([]RawTool, error)
}

// Strategy is one catalog tier
type Strategy interface {
	Tier() Tier
	Setup(ctx context.Context) ([]toolexecutor.ToolDefinition, error)
}

// Catalog is the result of a load
type Catalog struct {
	Tools    []toolexecutor.ToolDefinition `json:"tools"`
	LoadedAt time.Time                     `json:"loaded_at"`
	Tier     Tier                          `json:"tier"`
}

// Recorder receives one observation per catalog load
type Recorder interface {
	ObserveCatalogLoad(tier string, tools int)
}

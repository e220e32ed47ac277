package providers

import (
	"github.com/rs/zerolog/log"

	"github.com/ankr/toolhub/pkg/catalog"
)

// Options selects and configures the reference providers
type Options struct {
	DatabasePath string
	GSTAPIKey    string

	// Enabled reports whether a provider should load; nil enables all
	Enabled func(name string) bool
}

// Set is the provider list plus the resources that need closing
type Set struct {
	Providers []catalog.Provider
	memory    *Memory
}

// Default builds the reference providers in catalog order
func Default(opts Options) *Set {
	set := &Set{}

	memory := NewMemory(opts.DatabasePath)
	candidates := []catalog.Provider{
		NewUtilities(),
		NewCompliance(opts.GSTAPIKey),
		memory,
	}

	for _, p := range candidates {
		if opts.Enabled != nil && !opts.Enabled(p.Name()) {
			log.Info().Str("provider", p.Name()).Msg("Provider disabled by configuration")
			continue
		}
		if m, ok := p.(*Memory); ok {
			set.memory = m
		}
		set.Providers = append(set.Providers, p)
	}
	return set
}

// Close releases provider resources
func (s *Set) Close() error {
	if s.memory != nil {
		return s.memory.Close()
	}
	return nil
}

package config

import "fmt"

// Provider resolves the source a report reads its table export from.
// The validator uses it to check report references and the generation
// context uses it to find the table and column aliases to fetch.
type Provider interface {
	GetSourceConfig(name string) (*SourceConfig, error)
}

// MemoryConfigRegistry implements Provider over the sources of a loaded bundle,
// plus the ad-hoc CSV source the CLI builds from -input.
type MemoryConfigRegistry struct {
	sources map[string]*SourceConfig
}

// NewMemoryConfigRegistry creates a new registry with the given configurations.
func NewMemoryConfigRegistry(s map[string]*SourceConfig) *MemoryConfigRegistry {
	return &MemoryConfigRegistry{
		sources: s,
	}
}

// GetSourceConfig retrieves a SourceConfig by name.
func (r *MemoryConfigRegistry) GetSourceConfig(name string) (*SourceConfig, error) {
	if conf, ok := r.sources[name]; ok {
		return conf, nil
	}
	return nil, fmt.Errorf("source config not found: %s", name)
}

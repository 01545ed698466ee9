package config

import "fmt"

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Reflection constraints
	MaxMemoryLength int
	MaxSymbolLength int
	MinHappiness    int
	MaxHappiness    int

	// Comment constraints
	MaxCommentLength int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxMemoryLength: 5000,
		MaxSymbolLength: 50,
		MinHappiness:    1,
		MaxHappiness:    10,

		MaxCommentLength: 2000,
	}
}

// LoadDomainConfig loads domain configuration based on environment.
// Every environment currently shares the defaults.
func LoadDomainConfig(environment string) *DomainConfig {
	return DefaultDomainConfig()
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.MaxMemoryLength <= 0 {
		return fmt.Errorf("max memory length must be positive, got %d", c.MaxMemoryLength)
	}
	if c.MaxSymbolLength <= 0 {
		return fmt.Errorf("max symbol length must be positive, got %d", c.MaxSymbolLength)
	}
	if c.MinHappiness > c.MaxHappiness {
		return fmt.Errorf("happiness range is empty: %d > %d", c.MinHappiness, c.MaxHappiness)
	}
	return nil
}

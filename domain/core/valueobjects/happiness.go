package valueobjects

import (
	"fmt"
	"strconv"

	"reflections/domain/config"
	pkgerrors "reflections/pkg/errors"
)

// Happiness is a bounded rating attached to a reflection
type Happiness struct {
	value int
}

// NewHappiness creates a rating checked against the default domain configuration
func NewHappiness(value int) (Happiness, error) {
	return NewHappinessWithConfig(value, config.DefaultDomainConfig())
}

// NewHappinessWithConfig creates a rating checked against cfg's bounds
func NewHappinessWithConfig(value int, cfg *config.DomainConfig) (Happiness, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if value < cfg.MinHappiness || value > cfg.MaxHappiness {
		return Happiness{}, pkgerrors.NewValidationError(
			fmt.Sprintf("happiness must be between %d and %d", cfg.MinHappiness, cfg.MaxHappiness),
		).WithDetails(map[string]interface{}{"field": "happiness", "value": value})
	}
	return Happiness{value: value}, nil
}

// Int returns the numeric rating
func (h Happiness) Int() int {
	return h.value
}

// String returns the rating formatted as a decimal number
func (h Happiness) String() string {
	return strconv.Itoa(h.value)
}

// IsZero reports whether the rating was never set
func (h Happiness) IsZero() bool {
	return h.value == 0
}

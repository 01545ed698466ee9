package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"reflections/domain/config"
	pkgerrors "reflections/pkg/errors"
)

// ReflectionContent is the user-editable part of a reflection:
// the memory text, the happiness rating and the symbol tag.
type ReflectionContent struct {
	memory    string
	happiness Happiness
	symbol    string
}

// NewReflectionContent creates content with validation using default configuration
func NewReflectionContent(memory string, happiness int, symbol string) (ReflectionContent, error) {
	return NewReflectionContentWithConfig(memory, happiness, symbol, config.DefaultDomainConfig())
}

// NewReflectionContentWithConfig creates content with validation and configuration
func NewReflectionContentWithConfig(memory string, happiness int, symbol string, cfg *config.DomainConfig) (ReflectionContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	memory = strings.TrimSpace(memory)
	symbol = strings.TrimSpace(symbol)

	if memory == "" {
		return ReflectionContent{}, pkgerrors.NewValidationError("memory cannot be empty")
	}
	if utf8.RuneCountInString(memory) > cfg.MaxMemoryLength {
		return ReflectionContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("memory exceeds maximum length of %d characters", cfg.MaxMemoryLength))
	}

	if symbol == "" {
		return ReflectionContent{}, pkgerrors.NewValidationError("symbol cannot be empty")
	}
	if utf8.RuneCountInString(symbol) > cfg.MaxSymbolLength {
		return ReflectionContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("symbol exceeds maximum length of %d characters", cfg.MaxSymbolLength))
	}

	h, err := NewHappinessWithConfig(happiness, cfg)
	if err != nil {
		return ReflectionContent{}, err
	}

	return ReflectionContent{
		memory:    memory,
		happiness: h,
		symbol:    symbol,
	}, nil
}

// ReconstructReflectionContent rebuilds content from persisted values without
// applying length limits
func ReconstructReflectionContent(memory string, happiness Happiness, symbol string) ReflectionContent {
	return ReflectionContent{memory: memory, happiness: happiness, symbol: symbol}
}

// Memory returns the free-text memory
func (c ReflectionContent) Memory() string {
	return c.memory
}

// Happiness returns the rating
func (c ReflectionContent) Happiness() Happiness {
	return c.happiness
}

// Symbol returns the symbolic tag
func (c ReflectionContent) Symbol() string {
	return c.symbol
}

// Equals checks if two contents are equal
func (c ReflectionContent) Equals(other ReflectionContent) bool {
	return c.memory == other.memory &&
		c.happiness == other.happiness &&
		c.symbol == other.symbol
}

// Summary returns a truncated summary of the memory for list views
func (c ReflectionContent) Summary(maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(c.memory) <= maxLength {
		return c.memory
	}
	if maxLength <= 3 {
		return string([]rune(c.memory)[:maxLength])
	}
	runes := []rune(c.memory)
	return string(runes[:maxLength-3]) + "..."
}

package valueobjects

import (
	"strconv"
	"strings"
	"testing"

	"reflections/domain/config"
	pkgerrors "reflections/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHappiness_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"below range", 0, true},
		{"lower bound", 1, false},
		{"middle", 5, false},
		{"upper bound", 10, false},
		{"above range", 11, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHappiness(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, h.Int())
			assert.Equal(t, strconv.Itoa(tt.value), h.String())
		})
	}
}

func TestNewHappinessWithConfig_CustomRange(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MinHappiness = 0
	cfg.MaxHappiness = 5

	_, err := NewHappinessWithConfig(0, cfg)
	assert.NoError(t, err)

	_, err = NewHappinessWithConfig(6, cfg)
	assert.Error(t, err)
}

func TestNewReflectionContent_TrimsAndValidates(t *testing.T) {
	content, err := NewReflectionContent("  a quiet morning  ", 7, " sun ")
	require.NoError(t, err)

	assert.Equal(t, "a quiet morning", content.Memory())
	assert.Equal(t, "sun", content.Symbol())
	assert.Equal(t, 7, content.Happiness().Int())
}

func TestNewReflectionContent_Errors(t *testing.T) {
	tests := []struct {
		name      string
		memory    string
		happiness int
		symbol    string
		wantMsg   string
	}{
		{"blank memory", "   ", 5, "sun", "memory cannot be empty"},
		{"blank symbol", "memory", 5, "", "symbol cannot be empty"},
		{"long memory", strings.Repeat("m", 5001), 5, "sun", "memory exceeds maximum length of 5000 characters"},
		{"long symbol", "memory", 5, strings.Repeat("s", 51), "symbol exceeds maximum length of 50 characters"},
		{"bad happiness", "memory", 42, "sun", "happiness must be between 1 and 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReflectionContent(tt.memory, tt.happiness, tt.symbol)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
			assert.Equal(t, tt.wantMsg, pkgerrors.GetAppError(err).Message)
		})
	}
}

func TestNewReflectionContent_CountsRunes(t *testing.T) {
	symbol := strings.Repeat("☀", 50)
	content, err := NewReflectionContent("memory", 3, symbol)
	require.NoError(t, err)
	assert.Equal(t, symbol, content.Symbol())
}

func TestReflectionContent_Summary(t *testing.T) {
	content, err := NewReflectionContent("walked along the river", 6, "water")
	require.NoError(t, err)

	assert.Equal(t, "walked along the river", content.Summary(100))
	assert.Equal(t, "walked...", content.Summary(9))
	assert.Equal(t, "wa", content.Summary(2))
	assert.Equal(t, "", content.Summary(0))
}

func TestReflectionContent_Equals(t *testing.T) {
	a, _ := NewReflectionContent("memory", 4, "moon")
	b, _ := NewReflectionContent("memory ", 4, "moon")
	c, _ := NewReflectionContent("memory", 5, "moon")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestNewReflectionIDFromString(t *testing.T) {
	id := NewReflectionID()

	parsed, err := NewReflectionIDFromString(id.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equals(id))

	_, err = NewReflectionIDFromString("")
	assert.Error(t, err)

	_, err = NewReflectionIDFromString("not-a-uuid")
	assert.Error(t, err)
}

func TestReflectionID_JSON(t *testing.T) {
	id := NewReflectionID()

	data, err := id.MarshalJSON()
	require.NoError(t, err)

	var decoded ReflectionID
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.True(t, decoded.Equals(id))

	assert.Error(t, decoded.UnmarshalJSON([]byte("42")))
}

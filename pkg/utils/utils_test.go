package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Memory    string `form:"memory" validate:"required,max=10"`
	Happiness *int   `form:"happiness" validate:"required,min=1,max=10"`
	Symbol    string `validate:"required"`
}

func TestValidateFields(t *testing.T) {
	low := 0
	errs := ValidateFields(sampleForm{Memory: "far too long here", Happiness: &low})

	require.NotNil(t, errs)
	assert.Equal(t, "Must be at most 10 characters.", errs["memory"])
	assert.Equal(t, "Must be at least 1.", errs["happiness"])
	assert.Equal(t, "This field is required.", errs["symbol"])
}

func TestValidateFields_MissingPointerIsRequired(t *testing.T) {
	errs := ValidateFields(sampleForm{Memory: "ok", Symbol: "s"})

	assert.Equal(t, FieldErrors{"happiness": "This field is required."}, errs)
}

func TestValidateFields_Valid(t *testing.T) {
	h := 10
	assert.Nil(t, ValidateFields(sampleForm{Memory: "ok", Happiness: &h, Symbol: "s"}))
	assert.NoError(t, ValidateStruct(sampleForm{Memory: "ok", Happiness: &h, Symbol: "s"}))
}

func TestValidateStruct_Message(t *testing.T) {
	err := ValidateStruct(sampleForm{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory This field is required.")
}

func TestFormatDisplay(t *testing.T) {
	ts := time.Date(2024, 2, 29, 21, 5, 0, 0, time.FixedZone("X", -3*60*60))

	assert.Equal(t, "Mar 1, 2024 00:05 UTC", FormatDisplay(ts))
}

func TestParseRFC3339(t *testing.T) {
	ts, err := ParseRFC3339("2024-01-02T03:04:05.123456789Z")
	require.NoError(t, err)
	assert.Equal(t, 123456789, ts.Nanosecond())

	_, err = ParseRFC3339("yesterday")
	assert.Error(t, err)
}

func TestNowUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NowUTC().Location())
}

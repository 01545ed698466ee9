package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"reflections/application/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/reflection/new", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestBindReflectionForm_Valid(t *testing.T) {
	form, err := BindReflectionForm(postForm(url.Values{
		"memory":    {"  Saw an old friend  "},
		"happiness": {"9"},
		"symbol":    {"handshake"},
	}))
	require.NoError(t, err)

	assert.True(t, form.Valid())
	assert.Equal(t, "Saw an old friend", form.Memory)
	assert.Equal(t, 9, form.HappinessValue())
	assert.Equal(t, "handshake", form.Symbol)
}

func TestBindReflectionForm_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		field  string
		msg    string
	}{
		{
			name:   "missing memory",
			values: url.Values{"memory": {"   "}, "happiness": {"5"}, "symbol": {"x"}},
			field:  "memory",
			msg:    "This field is required.",
		},
		{
			name:   "missing happiness",
			values: url.Values{"memory": {"m"}, "symbol": {"x"}},
			field:  "happiness",
			msg:    "This field is required.",
		},
		{
			name:   "non numeric happiness",
			values: url.Values{"memory": {"m"}, "happiness": {"very"}, "symbol": {"x"}},
			field:  "happiness",
			msg:    "Must be a whole number.",
		},
		{
			name:   "happiness too high",
			values: url.Values{"memory": {"m"}, "happiness": {"11"}, "symbol": {"x"}},
			field:  "happiness",
			msg:    "Must be at most 10.",
		},
		{
			name:   "happiness too low",
			values: url.Values{"memory": {"m"}, "happiness": {"0"}, "symbol": {"x"}},
			field:  "happiness",
			msg:    "Must be at least 1.",
		},
		{
			name:   "symbol too long",
			values: url.Values{"memory": {"m"}, "happiness": {"5"}, "symbol": {strings.Repeat("s", 51)}},
			field:  "symbol",
			msg:    "Must be at most 50 characters.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := BindReflectionForm(postForm(tt.values))
			require.NoError(t, err)

			assert.False(t, form.Valid())
			assert.Equal(t, tt.msg, form.Errors[tt.field])
		})
	}
}

func TestBindReflectionForm_EchoesRawHappiness(t *testing.T) {
	form, err := BindReflectionForm(postForm(url.Values{"happiness": {"lots"}}))
	require.NoError(t, err)

	assert.Equal(t, "lots", form.HappinessText())
	assert.Equal(t, 0, form.HappinessValue())
}

func TestFromReflection(t *testing.T) {
	form := FromReflection(queries.ReflectionView{
		Memory:     "Rainy walk",
		Happiness:  4,
		Symbol:     "umbrella",
		ModifyDate: time.Now(),
	})

	assert.Equal(t, "Rainy walk", form.Memory)
	assert.Equal(t, "4", form.HappinessText())
	assert.Equal(t, "umbrella", form.Symbol)
	assert.Empty(t, form.Errors)
}

package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash_SetThenPop(t *testing.T) {
	flash := NewFlash("flash", false)

	set := httptest.NewRecorder()
	flash.Set(set, "Reflection with date Mar 1, 2024 09:30 UTC has been deleted.")
	cookies := set.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/reflections", nil)
	req.AddCookie(cookies[0])
	popped := httptest.NewRecorder()

	message := flash.Pop(popped, req)

	assert.Equal(t, "Reflection with date Mar 1, 2024 09:30 UTC has been deleted.", message)
	cleared := popped.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestFlash_PopWithoutCookie(t *testing.T) {
	flash := NewFlash("flash", false)
	rec := httptest.NewRecorder()

	message := flash.Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, message)
	assert.Empty(t, rec.Result().Cookies())
}

func TestFlash_PopIgnoresGarbage(t *testing.T) {
	flash := NewFlash("flash", false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: "!!not-base64!!"})

	assert.Empty(t, flash.Pop(httptest.NewRecorder(), req))
}

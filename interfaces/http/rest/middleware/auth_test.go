package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reflections/pkg/auth"
	pkgerrors "reflections/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.JWTConfig{SecretKey: "secret", Issuer: "reflections", TTL: time.Hour})
	require.NoError(t, err)
	return NewAuthenticator(tokens, "session", "/login", zap.NewNop()), tokens
}

func userEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		if err != nil {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(user.UserID))
	})
}

func TestAuthenticate_Cookie(t *testing.T) {
	authenticator, tokens := newTestAuthenticator(t)
	token, err := tokens.GenerateToken("alice", "Alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reflections", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	rec := httptest.NewRecorder()

	authenticator.Authenticate(userEcho()).ServeHTTP(rec, req)

	assert.Equal(t, "alice", rec.Body.String())
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	authenticator, tokens := newTestAuthenticator(t)
	token, err := tokens.GenerateToken("bob", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reflections", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authenticator.Authenticate(userEcho()).ServeHTTP(rec, req)

	assert.Equal(t, "bob", rec.Body.String())
}

func TestAuthenticate_InvalidTokenIsAnonymous(t *testing.T) {
	authenticator, _ := newTestAuthenticator(t)
	req := httptest.NewRequest(http.MethodGet, "/reflections", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "garbage"})
	rec := httptest.NewRecorder()

	authenticator.Authenticate(userEcho()).ServeHTTP(rec, req)

	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestRequireLogin_RedirectsWithNext(t *testing.T) {
	authenticator, _ := newTestAuthenticator(t)
	req := httptest.NewRequest(http.MethodGet, "/reflection/edit/abc?x=1", nil)
	rec := httptest.NewRecorder()

	authenticator.RequireLogin(userEcho()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Freflection%2Fedit%2Fabc%3Fx%3D1", rec.Header().Get("Location"))
}

func TestRequireLogin_AllowsUser(t *testing.T) {
	authenticator, _ := newTestAuthenticator(t)
	req := httptest.NewRequest(http.MethodGet, "/reflections", nil)
	req = req.WithContext(auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "alice"}))
	rec := httptest.NewRecorder()

	authenticator.RequireLogin(userEcho()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestStartSession_SetsCookie(t *testing.T) {
	authenticator, tokens := newTestAuthenticator(t)
	rec := httptest.NewRecorder()

	require.NoError(t, authenticator.StartSession(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "alice", ""))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	claims, err := tokens.ValidateToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string) (bool, error) { return false, nil }
func (denyLimiter) Reset(ctx context.Context, key string) error         { return nil }

func TestRateLimit_Rejects(t *testing.T) {
	handler := RateLimit(denyLimiter{}, 10, time.Minute, pkgerrors.NewErrorHandler(zap.NewNop(), nil, false), zap.NewNop())
	rec := httptest.NewRecorder()

	handler(userEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reflection/new", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_Allows(t *testing.T) {
	limiter := auth.NewSlidingWindowLimiter(1, time.Minute)
	handler := RateLimit(limiter, 1, time.Minute, pkgerrors.NewErrorHandler(zap.NewNop(), nil, false), zap.NewNop())

	first := httptest.NewRecorder()
	handler(userEcho()).ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/reflection/new", nil))
	second := httptest.NewRecorder()
	handler(userEcho()).ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/reflection/new", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

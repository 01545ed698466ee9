package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"reflections/pkg/auth"

	"go.uber.org/zap"
)

// Authenticator resolves the session token of a request into a user
type Authenticator struct {
	tokens     *auth.TokenService
	cookieName string
	loginURL   string
	logger     *zap.Logger
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(tokens *auth.TokenService, cookieName, loginURL string, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		tokens:     tokens,
		cookieName: cookieName,
		loginURL:   loginURL,
		logger:     logger,
	}
}

// Authenticate puts the user in the request context when a valid session
// token is present. Requests without one pass through anonymously.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := a.extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.tokens.ValidateToken(token)
		if err != nil {
			a.logger.Debug("Ignoring invalid session token",
				zap.Error(err),
				zap.String("path", r.URL.Path),
			)
			if errors.Is(err, auth.ErrExpiredToken) {
				a.ClearSession(w)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
			UserID: claims.UserID,
			Name:   claims.Name,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLogin redirects anonymous requests to the login page
func (a *Authenticator) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.GetUserFromContext(r.Context()); err != nil {
			target := a.loginURL + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StartSession issues a session cookie for userID
func (a *Authenticator) StartSession(w http.ResponseWriter, r *http.Request, userID, name string) error {
	token, err := a.tokens.GenerateToken(userID, name)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSession removes the session cookie
func (a *Authenticator) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// extractToken reads the token from the Authorization header or the session cookie
func (a *Authenticator) extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie(a.cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

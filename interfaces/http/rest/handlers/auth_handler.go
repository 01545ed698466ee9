package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"reflections/interfaces/http/rest/middleware"
	"reflections/interfaces/http/rest/views"
	pkgerrors "reflections/pkg/errors"

	"go.uber.org/zap"
)

var userNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.@-]{1,64}$`)

// AuthHandler serves the development identity provider
type AuthHandler struct {
	authenticator *middleware.Authenticator
	views         *views.Renderer
	errorHandler  *pkgerrors.ErrorHandler
	enabled       bool
	logger        *zap.Logger
}

// NewAuthHandler creates a new auth handler. When enabled is false the
// login form is refused; sessions must then come from an external issuer
// sharing the signing key.
func NewAuthHandler(
	authenticator *middleware.Authenticator,
	renderer *views.Renderer,
	errorHandler *pkgerrors.ErrorHandler,
	enabled bool,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		views:         renderer,
		errorHandler:  errorHandler,
		enabled:       enabled,
		logger:        logger,
	}
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		h.errorHandler.HandleStatus(w, r, http.StatusNotFound, "Login is handled by the identity provider")
		return
	}
	h.renderLogin(w, r, http.StatusOK, safeNext(r.URL.Query().Get("next")), "")
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		h.errorHandler.HandleStatus(w, r, http.StatusNotFound, "Login is handled by the identity provider")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "Malformed form submission")
		return
	}

	next := safeNext(r.PostForm.Get("next"))
	username := strings.TrimSpace(r.PostForm.Get("username"))
	if !userNamePattern.MatchString(username) {
		h.renderLogin(w, r, http.StatusUnprocessableEntity, next, "Enter a user name of letters, digits or . _ @ -")
		return
	}

	if err := h.authenticator.StartSession(w, r, username, username); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("failed to start session").WithCause(err))
		return
	}

	h.logger.Info("User logged in", zap.String("userID", username))
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authenticator.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, next, message string) {
	err := h.views.Render(w, status, views.PageLogin, views.PageData{
		Title: "Log in",
		Data:  views.LoginPage{Next: next, Error: message},
	})
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("failed to render page").WithCause(err))
	}
}

// safeNext keeps redirects on this site
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/reflections"
	}
	return next
}

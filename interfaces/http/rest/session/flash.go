package session

import (
	"encoding/base64"
	"net/http"
)

// Flash stores a one-shot notice in a cookie. The notice is shown on the
// next page that pops it and is cleared at the same time.
type Flash struct {
	cookieName string
	secure     bool
}

// NewFlash creates a flash store using cookieName
func NewFlash(cookieName string, secure bool) *Flash {
	return &Flash{cookieName: cookieName, secure: secure}
}

// Set queues message for the next page
func (f *Flash) Set(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     f.cookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the queued message, if any, and clears it
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(f.cookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     f.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})

	message, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(message)
}

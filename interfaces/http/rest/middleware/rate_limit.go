package middleware

import (
	"net/http"
	"time"

	"reflections/pkg/auth"
	pkgerrors "reflections/pkg/errors"

	"go.uber.org/zap"
)

// RateLimit limits requests per authenticated user, falling back to the
// client address. Limiter failures let the request through.
func RateLimit(limiter auth.RateLimiter, limit int, window time.Duration, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + r.RemoteAddr
			if user, err := auth.GetUserFromContext(r.Context()); err == nil {
				key = "user:" + user.UserID
			}

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("Rate limiter error", zap.Error(err), zap.String("key", key))
				allowed = true
			}
			if !allowed {
				errorHandler.Handle(w, r, pkgerrors.NewRateLimitError(limit, window.String()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package errors

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// PageRenderer renders a user-facing error page
type PageRenderer interface {
	RenderError(w http.ResponseWriter, status int, title, message string) error
}

// ErrorHandler turns errors into HTML error pages and log lines
type ErrorHandler struct {
	logger        *zap.Logger
	renderer      PageRenderer
	debug         bool
	defaultStatus int
}

// NewErrorHandler creates a new error handler.
// A nil renderer falls back to plain-text responses.
func NewErrorHandler(logger *zap.Logger, renderer PageRenderer, debug bool) *ErrorHandler {
	return &ErrorHandler{
		logger:        logger,
		renderer:      renderer,
		debug:         debug,
		defaultStatus: http.StatusInternalServerError,
	}
}

// Handle processes an error and sends an HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status := h.defaultStatus
	message := "An internal error occurred"

	if appErr := GetAppError(err); appErr != nil {
		if appErr.HTTPStatus != 0 {
			status = appErr.HTTPStatus
		}
		if status < 500 || h.debug {
			message = appErr.Message
		}
		h.logError(r, appErr, status)
	} else {
		h.logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
			zap.Int("status", status),
		)
		if h.debug {
			message = err.Error()
		}
	}

	h.render(w, status, message)
}

// HandleStatus sends an error page with a specific status code
func (h *ErrorHandler) HandleStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.logger.Warn("HTTP error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("message", message),
	)
	h.render(w, status, message)
}

// logError logs an application error with appropriate level
func (h *ErrorHandler) logError(r *http.Request, err *AppError, status int) {
	fields := []zap.Field{
		zap.String("error_type", string(err.Type)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", r.Header.Get("X-Request-ID")),
	}

	if err.Cause != nil {
		fields = append(fields, zap.Error(err.Cause))
	}
	if err.Details != nil {
		fields = append(fields, zap.Any("details", err.Details))
	}

	switch {
	case status >= 500:
		h.logger.Error(err.Message, fields...)
	case status >= 400:
		h.logger.Warn(err.Message, fields...)
	default:
		h.logger.Info(err.Message, fields...)
	}
}

func (h *ErrorHandler) render(w http.ResponseWriter, status int, message string) {
	if h.renderer != nil {
		err := h.renderer.RenderError(w, status, http.StatusText(status), message)
		if err == nil {
			return
		}
		h.logger.Error("Failed to render error page", zap.Error(err))
	}
	http.Error(w, message, status)
}

// Middleware returns an HTTP middleware that converts panics into error pages
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.Handle(w, r, NewInternalError(fmt.Sprintf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

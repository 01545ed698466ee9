package rest

import (
	"context"
	"net/http"
	"time"

	"reflections/application/commands/bus"
	"reflections/application/ports"
	querybus "reflections/application/queries/bus"
	"reflections/interfaces/http/rest/handlers"
	"reflections/interfaces/http/rest/middleware"
	"reflections/interfaces/http/rest/session"
	"reflections/interfaces/http/rest/views"
	"reflections/pkg/auth"
	"reflections/pkg/common"
	pkgerrors "reflections/pkg/errors"
	"reflections/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterConfig carries the HTTP-level settings of the router
type RouterConfig struct {
	EnableLogin     bool
	EnableCORS      bool
	AllowedOrigins  []string
	SecureCookies   bool
	Debug           bool
	RateLimit       int
	RateLimitWindow time.Duration
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus    *bus.CommandBus
	queryBus      *querybus.QueryBus
	authenticator *middleware.Authenticator
	rateLimiter   auth.RateLimiter
	health        ports.HealthChecker
	tracer        *observability.Tracer
	config        RouterConfig
	logger        *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	authenticator *middleware.Authenticator,
	rateLimiter auth.RateLimiter,
	health ports.HealthChecker,
	tracer *observability.Tracer,
	config RouterConfig,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus:    commandBus,
		queryBus:      queryBus,
		authenticator: authenticator,
		rateLimiter:   rateLimiter,
		health:        health,
		tracer:        tracer,
		config:        config,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() (*chi.Mux, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}
	errorHandler := pkgerrors.NewErrorHandler(rt.logger, renderer, rt.config.Debug)
	flash := session.NewFlash("flash", rt.config.SecureCookies)

	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.tracer.Middleware)
	router.Use(rt.authenticator.Authenticate)
	router.Use(middleware.Logger(rt.logger))
	router.Use(errorHandler.Middleware)

	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.config.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusNotFound, "Page not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	authHandler := handlers.NewAuthHandler(rt.authenticator, renderer, errorHandler, rt.config.EnableLogin, rt.logger)
	router.Get("/login", authHandler.LoginForm)
	router.Post("/login", authHandler.Login)
	router.Get("/logout", authHandler.Logout)

	reflectionHandler := handlers.NewReflectionHandler(rt.commandBus, rt.queryBus, renderer, flash, errorHandler, rt.logger)
	router.Group(func(r chi.Router) {
		r.Use(rt.authenticator.RequireLogin)

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/reflections", http.StatusSeeOther)
		})
		r.Get("/reflections", reflectionHandler.List)
		r.Get("/reflection/new", reflectionHandler.NewForm)
		r.Get("/reflection/{id}", reflectionHandler.Show)
		r.Get("/reflection/edit/{id}", reflectionHandler.Edit)

		// Writes are rate limited per user
		r.Group(func(r chi.Router) {
			if rt.rateLimiter != nil {
				r.Use(middleware.RateLimit(rt.rateLimiter, rt.config.RateLimit, rt.config.RateLimitWindow, errorHandler, rt.logger))
			}
			r.Post("/reflection/new", reflectionHandler.Create)
			r.Post("/reflection/edit/{id}", reflectionHandler.Edit)
			r.Get("/reflection/delete/{id}", reflectionHandler.Delete)
		})
	})

	return router, nil
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, common.NewHealthResponse("healthy"))
}

// readinessCheck reports whether the reflection store answers
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.health == nil {
		common.RespondJSON(w, http.StatusOK, common.NewHealthResponse("ready"))
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()

	if err := rt.health.Ping(ctx); err != nil {
		rt.logger.Warn("Readiness check failed", zap.Error(err))
		resp := common.NewHealthResponse("not ready")
		resp.Checks = map[string]string{"store": "unavailable"}
		common.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp := common.NewHealthResponse("ready")
	resp.Checks = map[string]string{"store": "ok"}
	common.RespondJSON(w, http.StatusOK, resp)
}

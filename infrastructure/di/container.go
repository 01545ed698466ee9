package di

import (
	"reflections/application/commands/bus"
	"reflections/application/ports"
	querybus "reflections/application/queries/bus"
	"reflections/infrastructure/config"
	"reflections/interfaces/http/rest"
	"reflections/interfaces/http/rest/middleware"
	"reflections/pkg/auth"
	"reflections/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	ReflectionRepo ports.ReflectionRepository
	CommentRepo    ports.CommentRepository
	Health         ports.HealthChecker
	EventBus       ports.EventBus
	CommandBus     *bus.CommandBus
	QueryBus       *querybus.QueryBus
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	Authenticator  *middleware.Authenticator
	RateLimiter    auth.RateLimiter
}

// Router builds the HTTP router over the container's dependencies
func (c *Container) Router() *rest.Router {
	return rest.NewRouter(
		c.CommandBus,
		c.QueryBus,
		c.Authenticator,
		c.RateLimiter,
		c.Health,
		c.Tracer,
		rest.RouterConfig{
			EnableLogin:     !c.Config.IsProduction(),
			EnableCORS:      c.Config.EnableCORS,
			AllowedOrigins:  c.Config.AllowedOrigins,
			SecureCookies:   c.Config.IsProduction(),
			Debug:           c.Config.IsDevelopment(),
			RateLimit:       c.Config.RateLimitRequests,
			RateLimitWindow: c.Config.RateLimitWindow,
		},
		c.Logger,
	)
}

//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"reflections/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideTracer,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideReflectionRepository,
	ProvideCommentRepository,
	ProvideHealthChecker,
	ProvideEventBus,
	ProvideMetrics,
	ProvideRateLimiter,
	ProvideClock,
	ProvideDomainConfig,
	ProvideTokenService,
	ProvideAuthenticator,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}

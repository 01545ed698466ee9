package di

import (
	"context"
	"fmt"

	"reflections/application/commands"
	"reflections/application/commands/bus"
	commands_handlers "reflections/application/commands/handlers"
	"reflections/application/ports"
	"reflections/application/queries"
	querybus "reflections/application/queries/bus"
	queries_handlers "reflections/application/queries/handlers"
	domainconfig "reflections/domain/config"
	"reflections/infrastructure/config"
	"reflections/infrastructure/messaging/eventbridge"
	"reflections/infrastructure/persistence/dynamodb"
	"reflections/infrastructure/persistence/memory"
	"reflections/interfaces/http/rest/middleware"
	"reflections/pkg/auth"
	"reflections/pkg/observability"
	"reflections/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

const serviceName = "reflections"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = level

	return zapCfg.Build(zap.Fields(zap.String("service", serviceName)))
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideAWSConfig creates AWS configuration. Loading does not contact AWS,
// so it is safe in memory mode.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config, tracer *observability.Tracer) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	tracer.InstrumentAWS(&awsCfg)
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideReflectionRepository selects the reflection store named by STORE_DRIVER
func ProvideReflectionRepository(
	cfg *config.Config,
	client *awsdynamodb.Client,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.ReflectionRepository {
	if cfg.StoreDriver == config.StoreDriverDynamoDB {
		return dynamodb.NewReflectionRepository(client, cfg.DynamoDBTable, tracer, logger)
	}
	logger.Warn("Using in-memory reflection store; data is lost on restart")
	return memory.NewReflectionRepository()
}

// ProvideCommentRepository selects the comment store named by STORE_DRIVER
func ProvideCommentRepository(
	cfg *config.Config,
	client *awsdynamodb.Client,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.CommentRepository {
	if cfg.StoreDriver == config.StoreDriverDynamoDB {
		return dynamodb.NewCommentRepository(client, cfg.DynamoDBTable, tracer, logger)
	}
	return memory.NewCommentRepository()
}

// ProvideHealthChecker exposes the reflection store's ping, when it has one
func ProvideHealthChecker(repo ports.ReflectionRepository) ports.HealthChecker {
	if checker, ok := repo.(ports.HealthChecker); ok {
		return checker
	}
	return nil
}

// ProvideEventBus publishes to EventBridge when a bus is configured and
// to the log otherwise
func ProvideEventBus(cfg *config.Config, client *awseventbridge.Client, logger *zap.Logger) ports.EventBus {
	if cfg.EventBusName == "" {
		return eventbridge.NewLogPublisher(logger)
	}
	return eventbridge.NewBreakerPublisher(
		eventbridge.NewPublisher(client, cfg.EventBusName, logger),
		eventbridge.DefaultBreakerConfig(cfg.EventBusName),
		logger,
	)
}

// ProvideMetrics creates metrics instance. Disabled metrics record nothing.
func ProvideMetrics(cfg *config.Config, client *awscloudwatch.Client, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("Reflections/%s", cfg.Environment)
	if !cfg.EnableMetrics {
		return observability.NewMetrics(namespace, nil, logger)
	}
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideRateLimiter limits writes per user. The DynamoDB store shares
// counters across instances; the memory store keeps them per process.
func ProvideRateLimiter(cfg *config.Config, client *awsdynamodb.Client) auth.RateLimiter {
	if cfg.StoreDriver == config.StoreDriverDynamoDB {
		return auth.NewDistributedRateLimiter(client, cfg.DynamoDBTable, cfg.RateLimitRequests, cfg.RateLimitWindow, "WRITE")
	}
	return auth.NewSlidingWindowLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
}

// ProvideClock supplies the wall clock used to stamp writes
func ProvideClock() ports.Clock {
	return ports.ClockFunc(utils.NowUTC)
}

// ProvideDomainConfig loads the field limits
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	domainCfg := domainconfig.LoadDomainConfig(cfg.Environment)
	if err := domainCfg.Validate(); err != nil {
		return nil, err
	}
	return domainCfg, nil
}

// ProvideTokenService creates the session token service
func ProvideTokenService(cfg *config.Config) (*auth.TokenService, error) {
	return auth.NewTokenService(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		TTL:       cfg.SessionTTL,
	})
}

// ProvideAuthenticator creates the session middleware
func ProvideAuthenticator(cfg *config.Config, tokens *auth.TokenService, logger *zap.Logger) *middleware.Authenticator {
	return middleware.NewAuthenticator(tokens, cfg.SessionCookie, cfg.LoginURL, logger)
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

// Handle implements bus.CommandHandler
func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	reflectionRepo ports.ReflectionRepository,
	eventBus ports.EventBus,
	clock ports.Clock,
	domainCfg *domainconfig.DomainConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
	)

	createHandler := commands_handlers.NewCreateReflectionHandler(reflectionRepo, eventBus, clock, domainCfg, logger)
	updateHandler := commands_handlers.NewUpdateReflectionHandler(reflectionRepo, eventBus, clock, domainCfg, logger)
	deleteHandler := commands_handlers.NewDeleteReflectionHandler(reflectionRepo, eventBus, clock, logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateReflectionCommand{}, &CommandHandlerAdapter{
			handler: func(ctx context.Context, cmd bus.Command) error {
				createCmd, ok := cmd.(commands.CreateReflectionCommand)
				if !ok {
					return fmt.Errorf("invalid command type %T", cmd)
				}
				_, err := createHandler.Handle(ctx, createCmd)
				return err
			},
		}},
		{commands.UpdateReflectionCommand{}, &CommandHandlerAdapter{
			handler: func(ctx context.Context, cmd bus.Command) error {
				updateCmd, ok := cmd.(commands.UpdateReflectionCommand)
				if !ok {
					return fmt.Errorf("invalid command type %T", cmd)
				}
				return updateHandler.Handle(ctx, updateCmd)
			},
		}},
		{commands.DeleteReflectionCommand{}, &CommandHandlerAdapter{
			handler: func(ctx context.Context, cmd bus.Command) error {
				deleteCmd, ok := cmd.(commands.DeleteReflectionCommand)
				if !ok {
					return fmt.Errorf("invalid command type %T", cmd)
				}
				return deleteHandler.Handle(ctx, deleteCmd)
			},
		}},
	}

	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, reg.handler); err != nil {
			return nil, err
		}
	}
	return commandBus, nil
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

// Handle implements querybus.QueryHandler
func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	reflectionRepo ports.ReflectionRepository,
	commentRepo ports.CommentRepository,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.MetricsMiddleware(metrics))

	getHandler := queries_handlers.NewGetReflectionHandler(reflectionRepo, commentRepo, logger)
	listHandler := queries_handlers.NewListReflectionsHandler(reflectionRepo, logger)

	if err := queryBus.Register(queries.GetReflectionQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.GetReflectionQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", query)
			}
			return getHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	if err := queryBus.Register(queries.ListReflectionsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.ListReflectionsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type %T", query)
			}
			return listHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	return queryBus, nil
}

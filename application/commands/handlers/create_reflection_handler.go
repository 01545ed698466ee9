package handlers

import (
	"context"
	"fmt"

	"reflections/application/commands"
	"reflections/application/ports"
	"reflections/domain/config"
	"reflections/domain/core/entities"
	"reflections/domain/core/valueobjects"

	"go.uber.org/zap"
)

// CreateReflectionHandler handles reflection creation commands
type CreateReflectionHandler struct {
	reflectionRepo ports.ReflectionRepository
	eventBus       ports.EventBus
	clock          ports.Clock
	domainConfig   *config.DomainConfig
	logger         *zap.Logger
}

// NewCreateReflectionHandler creates a new create reflection handler
func NewCreateReflectionHandler(
	reflectionRepo ports.ReflectionRepository,
	eventBus ports.EventBus,
	clock ports.Clock,
	domainConfig *config.DomainConfig,
	logger *zap.Logger,
) *CreateReflectionHandler {
	if domainConfig == nil {
		domainConfig = config.DefaultDomainConfig()
	}
	return &CreateReflectionHandler{
		reflectionRepo: reflectionRepo,
		eventBus:       eventBus,
		clock:          clock,
		domainConfig:   domainConfig,
		logger:         logger,
	}
}

// Handle executes the create reflection command
func (h *CreateReflectionHandler) Handle(ctx context.Context, cmd commands.CreateReflectionCommand) (*entities.Reflection, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}

	id, err := valueobjects.NewReflectionIDFromString(cmd.ReflectionID)
	if err != nil {
		return nil, fmt.Errorf("invalid reflection ID: %w", err)
	}

	content, err := valueobjects.NewReflectionContentWithConfig(cmd.Memory, cmd.Happiness, cmd.Symbol, h.domainConfig)
	if err != nil {
		return nil, err
	}

	reflection, err := entities.NewReflection(id, cmd.UserID, content, h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := h.reflectionRepo.Save(ctx, reflection); err != nil {
		return nil, fmt.Errorf("failed to save reflection: %w", err)
	}

	publishEvents(ctx, h.eventBus, h.logger, reflection)

	h.logger.Info("Reflection created",
		zap.String("reflectionID", id.String()),
		zap.String("userID", cmd.UserID),
	)

	return reflection, nil
}

// publishEvents publishes and commits the reflection's pending events.
// Publishing is best effort; the write has already succeeded.
func publishEvents(ctx context.Context, eventBus ports.EventBus, logger *zap.Logger, reflection *entities.Reflection) {
	pending := reflection.GetUncommittedEvents()
	if len(pending) == 0 {
		return
	}
	if err := eventBus.PublishBatch(ctx, pending); err != nil {
		logger.Warn("Failed to publish reflection events",
			zap.String("reflectionID", reflection.ID().String()),
			zap.Int("count", len(pending)),
			zap.Error(err),
		)
	}
	reflection.MarkEventsAsCommitted()
}

package handlers

import (
	"context"
	"fmt"

	"reflections/application/commands"
	"reflections/application/ports"
	"reflections/domain/config"
	"reflections/domain/core/valueobjects"
	pkgerrors "reflections/pkg/errors"

	"go.uber.org/zap"
)

// UpdateReflectionHandler handles reflection edit commands
type UpdateReflectionHandler struct {
	reflectionRepo ports.ReflectionRepository
	eventBus       ports.EventBus
	clock          ports.Clock
	domainConfig   *config.DomainConfig
	logger         *zap.Logger
}

// NewUpdateReflectionHandler creates a new update reflection handler
func NewUpdateReflectionHandler(
	reflectionRepo ports.ReflectionRepository,
	eventBus ports.EventBus,
	clock ports.Clock,
	domainConfig *config.DomainConfig,
	logger *zap.Logger,
) *UpdateReflectionHandler {
	if domainConfig == nil {
		domainConfig = config.DefaultDomainConfig()
	}
	return &UpdateReflectionHandler{
		reflectionRepo: reflectionRepo,
		eventBus:       eventBus,
		clock:          clock,
		domainConfig:   domainConfig,
		logger:         logger,
	}
}

// Handle executes the update reflection command
func (h *UpdateReflectionHandler) Handle(ctx context.Context, cmd commands.UpdateReflectionCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	id, err := valueobjects.NewReflectionIDFromString(cmd.ReflectionID)
	if err != nil {
		return pkgerrors.NewNotFoundError("reflection").WithCause(err)
	}

	reflection, err := h.reflectionRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get reflection: %w", err)
	}

	content, err := valueobjects.NewReflectionContentWithConfig(cmd.Memory, cmd.Happiness, cmd.Symbol, h.domainConfig)
	if err != nil {
		return err
	}

	// Ownership is enforced by the entity before anything is written.
	if err := reflection.Edit(cmd.UserID, content, h.clock.Now()); err != nil {
		return err
	}

	if err := h.reflectionRepo.Save(ctx, reflection); err != nil {
		return fmt.Errorf("failed to save reflection: %w", err)
	}

	publishEvents(ctx, h.eventBus, h.logger, reflection)

	h.logger.Info("Reflection updated",
		zap.String("reflectionID", cmd.ReflectionID),
		zap.String("userID", cmd.UserID),
	)

	return nil
}

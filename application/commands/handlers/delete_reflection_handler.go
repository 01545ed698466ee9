package handlers

import (
	"context"
	"fmt"

	"reflections/application/commands"
	"reflections/application/ports"
	"reflections/domain/core/valueobjects"
	pkgerrors "reflections/pkg/errors"

	"go.uber.org/zap"
)

// DeleteReflectionHandler handles reflection deletion commands.
// Comments that reference the reflection are left in place.
type DeleteReflectionHandler struct {
	reflectionRepo ports.ReflectionRepository
	eventBus       ports.EventBus
	clock          ports.Clock
	logger         *zap.Logger
}

// NewDeleteReflectionHandler creates a new delete reflection handler
func NewDeleteReflectionHandler(
	reflectionRepo ports.ReflectionRepository,
	eventBus ports.EventBus,
	clock ports.Clock,
	logger *zap.Logger,
) *DeleteReflectionHandler {
	return &DeleteReflectionHandler{
		reflectionRepo: reflectionRepo,
		eventBus:       eventBus,
		clock:          clock,
		logger:         logger,
	}
}

// Handle executes the delete reflection command
func (h *DeleteReflectionHandler) Handle(ctx context.Context, cmd commands.DeleteReflectionCommand) error {
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

	if err := reflection.MarkDeleted(cmd.UserID, h.clock.Now()); err != nil {
		return err
	}

	if err := h.reflectionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reflection: %w", err)
	}

	publishEvents(ctx, h.eventBus, h.logger, reflection)

	h.logger.Info("Reflection deleted",
		zap.String("reflectionID", cmd.ReflectionID),
		zap.String("userID", cmd.UserID),
	)

	return nil
}

package handlers

import (
	"context"
	"fmt"
	"sort"

	"reflections/application/ports"
	"reflections/application/queries"

	"go.uber.org/zap"
)

// ListReflectionsHandler handles queries listing all reflections
type ListReflectionsHandler struct {
	reflectionRepo ports.ReflectionRepository
	logger         *zap.Logger
}

// NewListReflectionsHandler creates a new list reflections handler
func NewListReflectionsHandler(reflectionRepo ports.ReflectionRepository, logger *zap.Logger) *ListReflectionsHandler {
	return &ListReflectionsHandler{
		reflectionRepo: reflectionRepo,
		logger:         logger,
	}
}

// Handle executes the list reflections query.
// Results are not filtered by author; newest first is a display choice only.
func (h *ListReflectionsHandler) Handle(ctx context.Context, query queries.ListReflectionsQuery) (*queries.ListReflectionsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	reflections, err := h.reflectionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reflections: %w", err)
	}

	views := make([]queries.ReflectionView, 0, len(reflections))
	for _, r := range reflections {
		views = append(views, toReflectionView(r, query.ViewerID))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ModifyDate.After(views[j].ModifyDate)
	})

	h.logger.Debug("Reflections listed",
		zap.String("viewerID", query.ViewerID),
		zap.Int("count", len(views)),
	)

	return &queries.ListReflectionsResult{
		Reflections: views,
		Total:       len(views),
	}, nil
}

package handlers

import (
	"context"
	"fmt"
	"sort"

	"reflections/application/ports"
	"reflections/application/queries"
	"reflections/domain/core/entities"
	"reflections/domain/core/valueobjects"
	pkgerrors "reflections/pkg/errors"

	"go.uber.org/zap"
)

// GetReflectionHandler handles queries for a single reflection
type GetReflectionHandler struct {
	reflectionRepo ports.ReflectionRepository
	commentRepo    ports.CommentRepository
	logger         *zap.Logger
}

// NewGetReflectionHandler creates a new get reflection handler
func NewGetReflectionHandler(
	reflectionRepo ports.ReflectionRepository,
	commentRepo ports.CommentRepository,
	logger *zap.Logger,
) *GetReflectionHandler {
	return &GetReflectionHandler{
		reflectionRepo: reflectionRepo,
		commentRepo:    commentRepo,
		logger:         logger,
	}
}

// Handle executes the get reflection query
func (h *GetReflectionHandler) Handle(ctx context.Context, query queries.GetReflectionQuery) (*queries.GetReflectionResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	// A malformed identifier can never exist in the store.
	id, err := valueobjects.NewReflectionIDFromString(query.ReflectionID)
	if err != nil {
		return nil, pkgerrors.NewNotFoundError("reflection").WithCause(err)
	}

	reflection, err := h.reflectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reflection: %w", err)
	}

	comments, err := h.commentRepo.GetByReflectionID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	h.logger.Debug("Reflection retrieved",
		zap.String("reflectionID", query.ReflectionID),
		zap.String("viewerID", query.ViewerID),
		zap.Int("comments", len(comments)),
	)

	return &queries.GetReflectionResult{
		Reflection: toReflectionView(reflection, query.ViewerID),
		Comments:   toCommentViews(comments),
	}, nil
}

func toReflectionView(r *entities.Reflection, viewerID string) queries.ReflectionView {
	content := r.Content()
	return queries.ReflectionView{
		ID:            r.ID().String(),
		Memory:        content.Memory(),
		Happiness:     content.Happiness().Int(),
		Symbol:        content.Symbol(),
		Author:        r.Author(),
		ModifyDate:    r.ModifyDate(),
		OwnedByViewer: r.IsOwnedBy(viewerID),
	}
}

func toCommentViews(comments []*entities.Comment) []queries.CommentView {
	views := make([]queries.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, queries.CommentView{
			ID:        c.ID(),
			Author:    c.Author(),
			Content:   c.Content(),
			CreatedAt: c.CreatedAt(),
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
	return views
}

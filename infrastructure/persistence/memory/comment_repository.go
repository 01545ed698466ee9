package memory

import (
	"context"
	"sort"
	"sync"

	"reflections/application/ports"
	"reflections/domain/core/entities"
	"reflections/domain/core/valueobjects"
)

// CommentRepository keeps comments in process memory, grouped by reflection
type CommentRepository struct {
	mu       sync.RWMutex
	comments map[string][]*entities.Comment
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

// NewCommentRepository creates an empty in-memory comment store
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[string][]*entities.Comment),
	}
}

// Save stores a comment. A comment with the same ID is replaced.
func (r *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := comment.ReflectionID().String()
	list := r.comments[key]
	for i, existing := range list {
		if existing.ID() == comment.ID() {
			list[i] = comment
			return nil
		}
	}
	r.comments[key] = append(list, comment)
	return nil
}

// GetByReflectionID returns the comments of a reflection, oldest first
func (r *CommentRepository) GetByReflectionID(ctx context.Context, id valueobjects.ReflectionID) ([]*entities.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]*entities.Comment, len(r.comments[id.String()]))
	copy(out, r.comments[id.String()])
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

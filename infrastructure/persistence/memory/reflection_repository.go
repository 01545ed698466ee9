package memory

import (
	"context"
	"sync"

	"reflections/application/ports"
	"reflections/domain/core/entities"
	"reflections/domain/core/valueobjects"
	pkgerrors "reflections/pkg/errors"
)

// ReflectionRepository keeps reflections in process memory. It backs
// development runs and tests; data does not survive a restart.
type ReflectionRepository struct {
	mu          sync.RWMutex
	reflections map[string]*entities.Reflection
}

var _ ports.ReflectionRepository = (*ReflectionRepository)(nil)

// NewReflectionRepository creates an empty in-memory reflection store
func NewReflectionRepository() *ReflectionRepository {
	return &ReflectionRepository{
		reflections: make(map[string]*entities.Reflection),
	}
}

// Save stores a copy of the reflection
func (r *ReflectionRepository) Save(ctx context.Context, reflection *entities.Reflection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored, err := snapshot(reflection)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reflections[reflection.ID().String()] = stored
	return nil
}

// GetByID returns a copy of the stored reflection
func (r *ReflectionRepository) GetByID(ctx context.Context, id valueobjects.ReflectionID) (*entities.Reflection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	stored, ok := r.reflections[id.String()]
	r.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.NewNotFoundError("reflection")
	}
	return snapshot(stored)
}

// List returns copies of every stored reflection
func (r *ReflectionRepository) List(ctx context.Context) ([]*entities.Reflection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Reflection, 0, len(r.reflections))
	for _, stored := range r.reflections {
		c, err := snapshot(stored)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Delete removes the reflection
func (r *ReflectionRepository) Delete(ctx context.Context, id valueobjects.ReflectionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reflections[id.String()]; !ok {
		return pkgerrors.NewNotFoundError("reflection")
	}
	delete(r.reflections, id.String())
	return nil
}

// snapshot copies a reflection without its pending events
func snapshot(r *entities.Reflection) (*entities.Reflection, error) {
	return entities.ReconstructReflection(r.ID(), r.Author(), r.Content(), r.ModifyDate())
}

// Ping always succeeds for the in-memory store
func (r *ReflectionRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

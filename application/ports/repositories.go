package ports

import (
	"context"
	"time"

	"reflections/domain/core/entities"
	"reflections/domain/core/valueobjects"
	"reflections/domain/events"
)

// ReflectionRepository defines the interface for reflection persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type ReflectionRepository interface {
	// Save persists a reflection (create or update, last write wins)
	Save(ctx context.Context, reflection *entities.Reflection) error

	// GetByID retrieves a reflection by its ID; a miss is a NOT_FOUND AppError
	GetByID(ctx context.Context, id valueobjects.ReflectionID) (*entities.Reflection, error)

	// List retrieves every reflection regardless of author
	List(ctx context.Context) ([]*entities.Reflection, error)

	// Delete removes a reflection; a miss is a NOT_FOUND AppError
	Delete(ctx context.Context, id valueobjects.ReflectionID) error
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// Save persists a comment. Used by the services that own comments and by tests.
	Save(ctx context.Context, comment *entities.Comment) error

	// GetByReflectionID retrieves the comments referencing a reflection, oldest first
	GetByReflectionID(ctx context.Context, id valueobjects.ReflectionID) ([]*entities.Comment, error)
}

// EventBus defines the interface for publishing domain events
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Clock supplies the time used to stamp writes
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time {
	return f()
}

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

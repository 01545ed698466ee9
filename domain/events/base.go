package events

import (
	"time"

	"reflections/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// Event types published by the reflection aggregate
const (
	TypeReflectionCreated = "reflection.created"
	TypeReflectionUpdated = "reflection.updated"
	TypeReflectionDeleted = "reflection.deleted"
)

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// ReflectionCreated is raised when a new reflection is created
type ReflectionCreated struct {
	BaseEvent
	ReflectionID valueobjects.ReflectionID `json:"reflection_id"`
	Author       string                    `json:"author"`
	Symbol       string                    `json:"symbol"`
	Happiness    int                       `json:"happiness"`
}

// NewReflectionCreated creates a ReflectionCreated event
func NewReflectionCreated(id valueobjects.ReflectionID, author string, content valueobjects.ReflectionContent, timestamp time.Time) ReflectionCreated {
	return ReflectionCreated{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   TypeReflectionCreated,
			Timestamp:   timestamp,
			Version:     1,
		},
		ReflectionID: id,
		Author:       author,
		Symbol:       content.Symbol(),
		Happiness:    content.Happiness().Int(),
	}
}

// ReflectionUpdated is raised when the owner edits a reflection
type ReflectionUpdated struct {
	BaseEvent
	ReflectionID valueobjects.ReflectionID `json:"reflection_id"`
	Author       string                    `json:"author"`
	OldSymbol    string                    `json:"old_symbol"`
	NewSymbol    string                    `json:"new_symbol"`
	OldHappiness int                       `json:"old_happiness"`
	NewHappiness int                       `json:"new_happiness"`
}

// NewReflectionUpdated creates a ReflectionUpdated event
func NewReflectionUpdated(id valueobjects.ReflectionID, author string, oldContent, newContent valueobjects.ReflectionContent, timestamp time.Time) ReflectionUpdated {
	return ReflectionUpdated{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   TypeReflectionUpdated,
			Timestamp:   timestamp,
			Version:     1,
		},
		ReflectionID: id,
		Author:       author,
		OldSymbol:    oldContent.Symbol(),
		NewSymbol:    newContent.Symbol(),
		OldHappiness: oldContent.Happiness().Int(),
		NewHappiness: newContent.Happiness().Int(),
	}
}

// ReflectionDeleted is raised when a reflection is removed
type ReflectionDeleted struct {
	BaseEvent
	ReflectionID valueobjects.ReflectionID `json:"reflection_id"`
	DeletedBy    string                    `json:"deleted_by"`
}

// NewReflectionDeleted creates a ReflectionDeleted event
func NewReflectionDeleted(id valueobjects.ReflectionID, deletedBy string, timestamp time.Time) ReflectionDeleted {
	return ReflectionDeleted{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   TypeReflectionDeleted,
			Timestamp:   timestamp,
			Version:     1,
		},
		ReflectionID: id,
		DeletedBy:    deletedBy,
	}
}

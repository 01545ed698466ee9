package entities

import (
	"time"

	"reflections/domain/core/valueobjects"
	"reflections/domain/events"
	pkgerrors "reflections/pkg/errors"
)

// Reflection is a user-authored journal entry.
// The author is fixed at creation; only the content and the
// modification date change afterwards.
type Reflection struct {
	id         valueobjects.ReflectionID
	author     string
	content    valueobjects.ReflectionContent
	modifyDate time.Time

	events []events.DomainEvent
}

// NewReflection creates a reflection owned by author, stamped with now
func NewReflection(id valueobjects.ReflectionID, author string, content valueobjects.ReflectionContent, now time.Time) (*Reflection, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("reflection ID cannot be empty")
	}
	if author == "" {
		return nil, pkgerrors.NewValidationError("author cannot be empty")
	}

	r := &Reflection{
		id:         id,
		author:     author,
		content:    content,
		modifyDate: now.UTC(),
		events:     []events.DomainEvent{},
	}
	r.addEvent(events.NewReflectionCreated(id, author, content, r.modifyDate))

	return r, nil
}

// ReconstructReflection rebuilds a reflection from stored data without raising events
func ReconstructReflection(
	id valueobjects.ReflectionID,
	author string,
	content valueobjects.ReflectionContent,
	modifyDate time.Time,
) (*Reflection, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("reflection ID cannot be empty")
	}
	if author == "" {
		return nil, pkgerrors.NewValidationError("author cannot be empty")
	}

	return &Reflection{
		id:         id,
		author:     author,
		content:    content,
		modifyDate: modifyDate.UTC(),
		events:     []events.DomainEvent{},
	}, nil
}

// ID returns the reflection's unique identifier
func (r *Reflection) ID() valueobjects.ReflectionID {
	return r.id
}

// Author returns the owner's user ID
func (r *Reflection) Author() string {
	return r.author
}

// Content returns the memory, happiness and symbol
func (r *Reflection) Content() valueobjects.ReflectionContent {
	return r.content
}

// ModifyDate returns the time of the last write
func (r *Reflection) ModifyDate() time.Time {
	return r.modifyDate
}

// IsOwnedBy reports whether userID is the reflection's author
func (r *Reflection) IsOwnedBy(userID string) bool {
	return userID != "" && r.author == userID
}

// Edit replaces the content on behalf of actor.
// Only the author may edit; id and author are never touched.
func (r *Reflection) Edit(actor string, content valueobjects.ReflectionContent, now time.Time) error {
	if !r.IsOwnedBy(actor) {
		return pkgerrors.NewOwnershipError("edit")
	}

	old := r.content
	r.content = content
	r.modifyDate = now.UTC()
	r.addEvent(events.NewReflectionUpdated(r.id, r.author, old, content, r.modifyDate))

	return nil
}

// MarkDeleted checks that actor may delete the reflection and records the event.
// The caller removes the record from the store.
func (r *Reflection) MarkDeleted(actor string, now time.Time) error {
	if !r.IsOwnedBy(actor) {
		return pkgerrors.NewOwnershipError("delete")
	}
	r.addEvent(events.NewReflectionDeleted(r.id, actor, now.UTC()))
	return nil
}

// GetUncommittedEvents returns events raised since the last commit
func (r *Reflection) GetUncommittedEvents() []events.DomainEvent {
	return r.events
}

// MarkEventsAsCommitted clears the pending events
func (r *Reflection) MarkEventsAsCommitted() {
	r.events = []events.DomainEvent{}
}

func (r *Reflection) addEvent(event events.DomainEvent) {
	r.events = append(r.events, event)
}

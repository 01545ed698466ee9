package entities

import (
	"strings"
	"time"

	"reflections/domain/core/valueobjects"
	pkgerrors "reflections/pkg/errors"

	"github.com/google/uuid"
)

// Comment is a reply attached to exactly one reflection by reference.
// Comments are written by other services; this one only reads them.
type Comment struct {
	id           string
	reflectionID valueobjects.ReflectionID
	author       string
	content      string
	createdAt    time.Time
}

// NewComment creates a comment on reflectionID
func NewComment(reflectionID valueobjects.ReflectionID, author, content string, now time.Time) (*Comment, error) {
	return ReconstructComment(uuid.New().String(), reflectionID, author, content, now)
}

// ReconstructComment rebuilds a comment from stored data
func ReconstructComment(id string, reflectionID valueobjects.ReflectionID, author, content string, createdAt time.Time) (*Comment, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("comment ID cannot be empty")
	}
	if reflectionID.IsZero() {
		return nil, pkgerrors.NewValidationError("comment must reference a reflection")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgerrors.NewValidationError("comment content cannot be empty")
	}

	return &Comment{
		id:           id,
		reflectionID: reflectionID,
		author:       author,
		content:      content,
		createdAt:    createdAt.UTC(),
	}, nil
}

// ID returns the comment identifier
func (c *Comment) ID() string { return c.id }

// ReflectionID returns the referenced reflection
func (c *Comment) ReflectionID() valueobjects.ReflectionID { return c.reflectionID }

// Author returns the commenter's user ID
func (c *Comment) Author() string { return c.author }

// Content returns the comment text
func (c *Comment) Content() string { return c.content }

// CreatedAt returns when the comment was written
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

package commands

import (
	pkgerrors "reflections/pkg/errors"
)

// CreateReflectionCommand represents the command to create a new reflection.
// ReflectionID is generated by the caller so it can redirect to the new record.
type CreateReflectionCommand struct {
	ReflectionID string `json:"reflection_id"`
	UserID       string `json:"user_id"`
	Memory       string `json:"memory"`
	Happiness    int    `json:"happiness"`
	Symbol       string `json:"symbol"`
}

// Validate validates the CreateReflectionCommand
func (c CreateReflectionCommand) Validate() error {
	if c.ReflectionID == "" {
		return pkgerrors.NewValidationError("reflection ID is required")
	}
	if c.UserID == "" {
		return pkgerrors.NewUnauthorizedError("user ID is required")
	}
	return nil
}

// UpdateReflectionCommand replaces the memory, happiness and symbol of a reflection
type UpdateReflectionCommand struct {
	ReflectionID string `json:"reflection_id"`
	UserID       string `json:"user_id"`
	Memory       string `json:"memory"`
	Happiness    int    `json:"happiness"`
	Symbol       string `json:"symbol"`
}

// Validate validates the UpdateReflectionCommand
func (c UpdateReflectionCommand) Validate() error {
	if c.ReflectionID == "" {
		return pkgerrors.NewValidationError("reflection ID is required")
	}
	if c.UserID == "" {
		return pkgerrors.NewUnauthorizedError("user ID is required")
	}
	return nil
}

// DeleteReflectionCommand removes a reflection
type DeleteReflectionCommand struct {
	ReflectionID string `json:"reflection_id"`
	UserID       string `json:"user_id"`
}

// Validate validates the DeleteReflectionCommand
func (c DeleteReflectionCommand) Validate() error {
	if c.ReflectionID == "" {
		return pkgerrors.NewValidationError("reflection ID is required")
	}
	if c.UserID == "" {
		return pkgerrors.NewUnauthorizedError("user ID is required")
	}
	return nil
}

package queries

import (
	"errors"
	"time"
)

// GetReflectionQuery represents a query to get a single reflection and its comments
type GetReflectionQuery struct {
	ViewerID     string
	ReflectionID string
}

// Validate validates the GetReflectionQuery
func (q GetReflectionQuery) Validate() error {
	if q.ViewerID == "" {
		return errors.New("viewer ID is required")
	}
	if q.ReflectionID == "" {
		return errors.New("reflection ID is required")
	}
	return nil
}

// ReflectionView is the read model of a reflection
type ReflectionView struct {
	ID            string    `json:"id"`
	Memory        string    `json:"memory"`
	Happiness     int       `json:"happiness"`
	Symbol        string    `json:"symbol"`
	Author        string    `json:"author"`
	ModifyDate    time.Time `json:"modifyDate"`
	OwnedByViewer bool      `json:"ownedByViewer"`
}

// CommentView is the read model of a comment
type CommentView struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetReflectionResult represents the result of getting a reflection
type GetReflectionResult struct {
	Reflection ReflectionView `json:"reflection"`
	Comments   []CommentView  `json:"comments"`
}

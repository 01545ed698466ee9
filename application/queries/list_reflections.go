package queries

import "errors"

// ListReflectionsQuery lists every reflection in the store, whatever its author
type ListReflectionsQuery struct {
	ViewerID string
}

// Validate validates the ListReflectionsQuery
func (q ListReflectionsQuery) Validate() error {
	if q.ViewerID == "" {
		return errors.New("viewer ID is required")
	}
	return nil
}

// ListReflectionsResult represents the result of listing reflections
type ListReflectionsResult struct {
	Reflections []ReflectionView `json:"reflections"`
	Total       int              `json:"total"`
}

package employee

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSortField   = errors.New("invalid sort field")
	ErrInvalidPageRequest = errors.New("invalid page request")
)

// ResourceNotFoundError is returned when a lookup by identity finds no row
type ResourceNotFoundError struct {
	Resource string
	Field    string
	Value    any
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not exist with given %s: %v", e.Resource, e.Field, e.Value)
}

// NewNotFoundError builds the not-found error for an employee id
func NewNotFoundError(id int64) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: "Employee", Field: "id", Value: id}
}

// IsNotFound reports whether err, or anything it wraps, is a ResourceNotFoundError
func IsNotFound(err error) bool {
	var notFound *ResourceNotFoundError
	return errors.As(err, &notFound)
}

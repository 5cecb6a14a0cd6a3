package application

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrNotLiked           = errors.New("post has not yet been liked")
)

// FieldViolation is one missing or invalid field in a mutation request.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError carries every violated field of a request so the client
// gets the full list in one round trip.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// requireFields returns a ValidationError listing every empty value, or nil
// when all are present. fields alternates name, value pairs.
func requireFields(pairs ...string) *ValidationError {
	var violations []FieldViolation
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			violations = append(violations, FieldViolation{Field: pairs[i], Message: pairs[i] + " is required"})
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

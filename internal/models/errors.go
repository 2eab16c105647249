package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrAlreadyEnrolled        = errors.New("already enrolled in event")
	ErrEventFull              = errors.New("event is full")
	ErrNotFound               = errors.New("not found")
	ErrNotEnrolled            = errors.New("not enrolled in event")
	ErrStorageDisabled        = errors.New("object storage is not configured")
)

// ValidationError carries per-field problems. Keys are JSON field names and
// values are message ids understood by the translator.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

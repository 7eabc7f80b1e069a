package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidInterval      = fmt.Errorf("%w: start_time must be before end_time", ErrValidation)
	ErrRoomConflict         = errors.New("room conflict")
	ErrFacultyConflict      = errors.New("faculty conflict")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrNotFound             = errors.New("not found")
	ErrNoDepartmentAssigned = errors.New("no department assigned")
	ErrUploadFailed         = errors.New("upload failed")
	ErrFetchFailed          = errors.New("fetch failed")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUnsupportedFile      = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file too large")
)

// FieldError attaches a field name to a validation or duplicate-key failure.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

// NewFieldError returns a validation FieldError.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message, Err: ErrValidation}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return e.Err }

// FieldErrors reports several invalid fields at once, keyed by field name.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error { return ErrValidation }

// ConflictKind names the dimension of a scheduling conflict.
type ConflictKind string

const (
	RoomConflict    ConflictKind = "room"
	FacultyConflict ConflictKind = "faculty"
)

// ConflictError reports an overlap with an existing entry.
type ConflictError struct {
	Kind ConflictKind
	// ConflictingID is uuid.Nil when the database constraint caught the
	// overlap and the other row is unknown.
	ConflictingID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict with entry %s", e.Kind, e.ConflictingID)
}

// Message is the user-facing explanation, keyed under Field() in responses.
func (e *ConflictError) Message() string {
	if e.Kind == FacultyConflict {
		return "This faculty member is already assigned to a class in this time slot."
	}
	return "This room is already booked for this time slot."
}

// Field is the request field the conflict is reported against.
func (e *ConflictError) Field() string { return string(e.Kind) }

func (e *ConflictError) Unwrap() error {
	if e.Kind == FacultyConflict {
		return ErrFacultyConflict
	}
	return ErrRoomConflict
}

package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors below wrap one of these so callers can match
// either the exact failure or the broad category with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// Uniqueness violations.
var (
	ErrDuplicateRegistration = fmt.Errorf("%w: registration already in use", ErrConflict)
	ErrDuplicateEmail        = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrDuplicateClassGroup   = fmt.Errorf("%w: class group already exists", ErrConflict)
)

// Validation failures.
var (
	ErrMissingFields           = fmt.Errorf("%w: required fields missing", ErrInvalidInput)
	ErrEmptyTitle              = fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	ErrPastEventDate           = fmt.Errorf("%w: event date must be in the future", ErrInvalidInput)
	ErrUnknownCreator          = fmt.Errorf("%w: creator does not exist", ErrInvalidInput)
	ErrUnknownConversationType = fmt.Errorf("%w: unknown conversation type", ErrInvalidInput)
)

// Authentication and session failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrAccessInactive     = fmt.Errorf("%w: user access is not active", ErrForbidden)
)

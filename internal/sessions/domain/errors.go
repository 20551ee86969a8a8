package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidStatus is the sentinel wrapped by InvalidStatusError.
var ErrInvalidStatus = errors.New("invalid session status")

// InvalidStatusError reports a status outside the known set during strict validation.
type InvalidStatusError struct {
	Status Status
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid session status %q", string(e.Status))
}

// Unwrap allows errors.Is(err, ErrInvalidStatus).
func (e *InvalidStatusError) Unwrap() error {
	return ErrInvalidStatus
}

// SessionNotFoundError is returned when a session lookup has no match.
type SessionNotFoundError struct {
	ID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ContainerNotFoundError is returned when a container lookup has no match.
type ContainerNotFoundError struct {
	ID string
}

func (e *ContainerNotFoundError) Error() string {
	return fmt.Sprintf("container not found: %s", e.ID)
}

// EntityNotFoundError is returned when an entity lookup has no match.
type EntityNotFoundError struct {
	ID string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity not found: %s", e.ID)
}

// IsNotFound reports whether err is any of the domain not-found errors.
func IsNotFound(err error) bool {
	var sessionErr *SessionNotFoundError
	var containerErr *ContainerNotFoundError
	var entityErr *EntityNotFoundError
	return errors.As(err, &sessionErr) || errors.As(err, &containerErr) || errors.As(err, &entityErr)
}

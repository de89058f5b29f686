// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrActivityNotFound is returned when no activity matches the given name exactly.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered signals a signup for an email already in the participant list.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrNotRegistered signals an unregister for an email absent from the participant list.
	ErrNotRegistered = errors.New("not registered")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
)

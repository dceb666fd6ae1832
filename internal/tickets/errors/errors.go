package errors

import "errors"

var (
	ErrNotFound = errors.New("ticket not found")

	ErrTypeNotFound = errors.New("ticket type not found")

	ErrInvalidID = errors.New("invalid ticket ID format")

	ErrAlreadyExists = errors.New("enrollment already holds a ticket")
)

package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrAlreadyExists = errors.New("user already holds a booking")

	ErrLockHeld = errors.New("room lock is held by another request")
)

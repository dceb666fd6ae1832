package errors

import "errors"

var (
	ErrNotFound = errors.New("enrollment not found")

	ErrInvalidID = errors.New("invalid enrollment ID format")
)

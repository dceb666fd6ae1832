package errors

import "errors"

var (
	ErrNotFound = errors.New("hotel not found")

	ErrRoomNotFound = errors.New("room not found")

	ErrInvalidID = errors.New("invalid hotel ID format")
)

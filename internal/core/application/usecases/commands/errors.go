package commands

import "errors"

var (
	// ErrInvalidRequest wraps every validation failure of command input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrOrderNotFound is returned when the order to transition does not exist.
	ErrOrderNotFound = errors.New("order not found")
)

package errors

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrInvalidPrice    = errors.New("price must be positive")
)

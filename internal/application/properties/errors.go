package properties

import "errors"

var (
	ErrNotFound     = errors.New("Property not found")
	ErrInvalidBody  = errors.New("Invalid request body")
	ErrCodeConflict = errors.New("Property code already taken")
	// ErrCodeExhausted means every code attempt lost to a concurrent writer.
	// It is distinct from a single failed insert.
	ErrCodeExhausted = errors.New("Listing code conflict, please try again in a moment")
)

package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTooLarge is returned by Set when an entry exceeds the whole budget.
	ErrTooLarge = errors.New("entry larger than cache budget")
)

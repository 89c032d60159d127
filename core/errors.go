package core

import "errors"

// ErrNotFound is a sentinel error for missing remote objects (commands, roles)
var ErrNotFound = errors.New("not found")

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

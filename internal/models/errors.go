package models

import "errors"

// Domain error kinds. Repositories wrap ErrNotFound, services wrap
// ErrConflict; handlers translate them to HTTP status codes with errors.Is.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness invariant (username or email) would be
	// violated by the requested write.
	ErrConflict = errors.New("already exists")
)

package repository

import "errors"

// ErrNotFound is returned when the requested row or cache entry does not exist.
var ErrNotFound = errors.New("not found")

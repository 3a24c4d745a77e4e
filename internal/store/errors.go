package store

import "errors"

// ErrNotFound is returned by Get and Delete when no record has the given id.
var ErrNotFound = errors.New("record not found")

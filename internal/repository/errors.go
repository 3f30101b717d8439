package repository

import "errors"

// ErrNotFound indicates that the requested row does not exist.
var ErrNotFound = errors.New("not found")

package ports

import "errors"

// ErrNotFound is returned by point lookups when the entity does not exist.
// Batch operations test for it with errors.Is and skip-and-continue.
var ErrNotFound = errors.New("not found")

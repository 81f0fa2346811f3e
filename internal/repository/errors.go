package repository

import "errors"

// ErrNotFound is returned when an article or project with the given id or
// slug does not exist. Handlers map it to a 404 response.
var ErrNotFound = errors.New("record not found")

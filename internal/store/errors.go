package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned when an insert collides with an
// existing username, either via the fast-path lookup or the unique
// index on users.user_name.
var ErrDuplicateUsername = errors.New("username already exists")

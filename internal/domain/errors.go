package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed collaborator email,
// empty chat message).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when an operation requires an authenticated
// user and none is present. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthenticated")

// ErrForbidden is returned when the authenticated user is not a collaborator
// on the trip they are trying to read or mutate.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("permission denied")

// ErrAlreadyExists is returned by repo functions on a unique-constraint
// violation (currently only the users.email index). Services translate it
// into the matching auth error code.
var ErrAlreadyExists = errors.New("already exists")

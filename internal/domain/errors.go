package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// match does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a business
// rule (e.g. an empty team name or scorer).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New(ErrValidationText)

// ErrValidationText is ErrValidation's message, for callers that need to
// strip it from a wrapped error's text.
const ErrValidationText = "validation error"

// ErrUnauthorized is returned when a protected operation is attempted without
// a verified, unexpired credential. Credential-specific failures wrap it.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoGoalsRecorded is returned when a scoreboard is requested for a match
// that has no goals yet.
// Handlers should map this to HTTP 404.
var ErrNoGoalsRecorded = errors.New("no goals recorded")

package domain

import "errors"

// Error kinds for the print pipeline and the confirmation workflow. Handlers
// map these onto HTTP statuses in one place; everything below the HTTP layer
// wraps one of them with %w and adds context.
var (
	ErrValidation = errors.New("validation failed")
	ErrDecode     = errors.New("decode failed")
	ErrGeometry   = errors.New("geometry failed")
	ErrPublish    = errors.New("publish failed")
	ErrNotFound   = errors.New("not found")
	ErrTimeout    = errors.New("external call timed out")
)

package services

import "errors"

// Error taxonomy shared by all services. Controllers map these to HTTP
// status codes; anything unwrapped is a persistence failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)

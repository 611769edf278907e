package httpapi

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMissingState = errors.New("missing state parameter")
	ErrBadNumber    = errors.New("parameter must be a number")
)

package model

import "errors"

// Sentinel kinds for period parsing.
var (
	ErrBadPeriod = errors.New("malformed period")
)

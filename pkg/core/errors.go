package core

import "errors"

// Common errors.
var (
	ErrClosed         = errors.New("store is closed")
	ErrInvalidPattern = errors.New("invalid watch pattern")
)

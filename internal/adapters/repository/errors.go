package repository

import "errors"

// Sentinel kinds for timeline store errors.
var (
	ErrNotFound     = errors.New("timeline not found")
	ErrInvalidLimit = errors.New("invalid list limit")
	ErrMissingID    = errors.New("document has no match id")
)

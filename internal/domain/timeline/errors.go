package timeline

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnordered    = errors.New("timeline points out of minute order")
	ErrNotMonotonic = errors.New("timeline cumulative value decreases")
)

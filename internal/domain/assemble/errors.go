package assemble

import "errors"

// ErrInvalidMatch reports a match whose team designation is unusable. It is a
// caller contract violation, not a data-quality problem.
var ErrInvalidMatch = errors.New("invalid match")

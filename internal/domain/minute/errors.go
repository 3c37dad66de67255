package minute

import "errors"

// ErrMalformedMinute reports minute text that is neither "<base>" nor "<base>+<added>".
var ErrMalformedMinute = errors.New("malformed minute")

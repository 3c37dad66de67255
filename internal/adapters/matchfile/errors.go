package matchfile

import "errors"

// Sentinel error kinds for this package.
var (
	ErrDecode = errors.New("decode match document")
	ErrEncode = errors.New("encode match document")
)

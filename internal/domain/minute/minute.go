// Package minute converts match-clock notation into an ordered integer scale.
package minute

import (
	"fmt"
	"strconv"
	"strings"
)

const stoppageSep = "+"

// Normalize returns the base minute of text. Stoppage time ("45+2") is placed
// at the minute it extends, so "45+2" and "45" both normalize to 45.
func Normalize(text string) (int, error) {
	base, _, err := Split(text)
	return base, err
}

// Split parses text into its base minute and stoppage-time component. The
// stoppage component is 0 when text has no "+N" suffix.
func Split(text string) (base, added int, err error) {
	s := strings.TrimSpace(text)
	head, tail, hasStoppage := strings.Cut(s, stoppageSep)

	if base, err = parseCount(head); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedMinute, text)
	}
	if !hasStoppage {
		return base, 0, nil
	}
	if added, err = parseCount(tail); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedMinute, text)
	}
	return base, added, nil
}

// Format renders a base minute and stoppage component the way match reports do.
func Format(base, added int) string {
	if added > 0 {
		return strconv.Itoa(base) + stoppageSep + strconv.Itoa(added) + "'"
	}
	return strconv.Itoa(base) + "'"
}

// parseCount accepts a non-empty run of ASCII digits. strconv.Atoi alone would
// also let signs through.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

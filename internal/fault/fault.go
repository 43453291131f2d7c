// Package fault holds the error kinds shared by the account and message
// services. Package-level sentinels wrap one of these kinds so callers can
// classify any error with errors.Is.
package fault

import "errors"

var (
	InvalidInput = errors.New("invalid input")
	Conflict     = errors.New("conflict")
	Unauthorized = errors.New("unauthorized")
	NotFound     = errors.New("not found")
)

// Kind returns the kind err wraps, or nil when it wraps none of them.
func Kind(err error) error {
	for _, k := range []error{InvalidInput, Conflict, Unauthorized, NotFound} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

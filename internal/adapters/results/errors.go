package results

import "errors"

// Sentinel kinds for result synchronization errors.
var (
	// ErrUpstream marks transport failures and non-OK upstream responses.
	ErrUpstream = errors.New("upstream results API failure")
	// ErrBadPayload marks responses that cannot be decoded into a draw.
	ErrBadPayload = errors.New("malformed results payload")
)

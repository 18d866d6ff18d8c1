package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrInvalidQuery = errors.New("invalid query")
	ErrSyncDisabled = errors.New("results sync not configured")
)

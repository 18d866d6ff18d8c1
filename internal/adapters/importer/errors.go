package importer

import "errors"

// Sentinel kinds for import errors.
var (
	ErrBadHeader = errors.New("unrecognized header row")
)

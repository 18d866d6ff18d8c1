package model

import "errors"

// ErrInvalidContest is returned when a contest identifier is not a positive
// integer.
var ErrInvalidContest = errors.New("invalid contest number")

package seedtool

import "time"

// HTTP status code constants.
const (
	StatusOK            = 200
	StatusCreated       = 201
	StatusConflict      = 409
	StatusUnprocessable = 422
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	SettleDelay          = 2 * time.Second
	PercentageMultiplier = 100
)

// Draw generation constants.
const (
	SetSize          = 6
	MaxNumber        = 60
	DrawIntervalDays = 2
	GuessBatchLimit  = 50
)

package config

import (
	"errors"
)

// Sentinel error kinds for this package, matchable with errors.Is.
// ErrLoadConfig covers file and environment read failures; ErrInvalidConfig
// covers values that fail validation after loading.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

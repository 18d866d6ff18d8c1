package generate

import "errors"

// Generation error constants.
var (
	// ErrInvalidBatchSize is returned when a batch count falls outside
	// [MinBatchSize, MaxBatchSize].
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// ErrGenerationExhausted is returned when the retry budget runs out
	// before a batch reaches its distinct guess count.
	ErrGenerationExhausted = errors.New("generation exhausted")
)

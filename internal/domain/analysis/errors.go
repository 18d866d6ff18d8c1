package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidComboSize is returned when a combination size falls outside
// [MinComboSize, MaxComboSize].
var ErrInvalidComboSize = errors.New("invalid combination size")

func errInvalidCombo(k int) error {
	return fmt.Errorf("%w: k=%d, want %d..%d", ErrInvalidComboSize, k, MinComboSize, MaxComboSize)
}

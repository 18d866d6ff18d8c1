// Package types contains the core lottery domain types used across the service.
package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Number universe constants.
const (
	// MinNumber is the smallest playable number.
	MinNumber = 1
	// MaxNumber is the largest playable number.
	MaxNumber = 60
	// SetSize is the number of distinct numbers in every draw and guess.
	SetSize = 6
	// MaxFixedSize is the largest fixed subset a generated guess may embed.
	// A guess needs at least one freely chosen number.
	MaxFixedSize = SetSize - 1
	// UniverseSize is the count of playable numbers.
	UniverseSize = MaxNumber - MinNumber + 1
)

// Tier is the prize category determined by how many of a draw's numbers a
// guess hit. Only four, five and six hits are meaningful categories.
type Tier string

// Prize tiers.
const (
	TierNone   Tier = "NONE"
	TierQuadra Tier = "QUADRA"
	TierQuina  Tier = "QUINA"
	TierSena   Tier = "SENA"
)

// NumberSet is a validated, order-independent set of exactly SetSize distinct
// numbers in [MinNumber, MaxNumber]. The zero value is NOT valid; sets are
// constructed by NewNumberSet and are immutable afterwards. Storage is a
// sorted array, so NumberSet values are comparable with == and usable as map
// keys.
type NumberSet struct {
	nums [SetSize]int
}

// NewNumberSet validates nums and returns the canonical NumberSet.
// It fails with ErrInvalidNumberSet when the count differs from SetSize,
// any value falls outside [MinNumber, MaxNumber], or a value repeats.
func NewNumberSet(nums ...int) (NumberSet, error) {
	if len(nums) != SetSize {
		return NumberSet{}, fmt.Errorf("%w: expected %d numbers, got %d", ErrInvalidNumberSet, SetSize, len(nums))
	}
	if err := checkMembers(nums, ErrInvalidNumberSet); err != nil {
		return NumberSet{}, err
	}

	var s NumberSet
	copy(s.nums[:], nums)
	sort.Ints(s.nums[:])
	return s, nil
}

// MustNumberSet is NewNumberSet that panics on invalid input.
// Intended for fixtures and tooling with compile-time-known numbers.
func MustNumberSet(nums ...int) NumberSet {
	s, err := NewNumberSet(nums...)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseNumberSet parses the canonical key format produced by Key,
// e.g. "04-08-15-16-23-42".
func ParseNumberSet(key string) (NumberSet, error) {
	nums, err := parseKey(key, ErrInvalidNumberSet)
	if err != nil {
		return NumberSet{}, err
	}
	return NewNumberSet(nums...)
}

// Values returns the numbers sorted ascending. The slice is a copy; mutating
// it does not affect the set.
func (s NumberSet) Values() []int {
	out := make([]int, SetSize)
	copy(out, s.nums[:])
	return out
}

// Contains reports whether n is one of the set's numbers.
func (s NumberSet) Contains(n int) bool {
	for _, v := range s.nums {
		if v == n {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every number of sub is in the set.
func (s NumberSet) ContainsAll(sub FixedSubset) bool {
	for _, v := range sub.nums {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// Intersect returns how many numbers the two sets share.
func (s NumberSet) Intersect(other NumberSet) int {
	hits := 0
	for _, v := range other.nums {
		if s.Contains(v) {
			hits++
		}
	}
	return hits
}

// Key returns the canonical zero-padded key, e.g. "04-08-15-16-23-42".
// Lexicographic order of keys equals numeric order of the sets, which keeps
// ranking tie-breaks deterministic.
func (s NumberSet) Key() string {
	return formatKey(s.nums[:])
}

// String implements fmt.Stringer using the canonical key.
func (s NumberSet) String() string {
	return s.Key()
}

// MarshalJSON encodes the set as a sorted JSON array of numbers.
func (s NumberSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes and validates a JSON array of numbers, so an invalid
// NumberSet can not enter through the wire either.
func (s *NumberSet) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNumberSet, err)
	}
	parsed, err := NewNumberSet(raw...)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// FixedSubset is a validated set of zero to MaxFixedSize distinct numbers in
// [MinNumber, MaxNumber] that every guess in a generation batch must embed.
// The zero value is the empty subset. Immutable once constructed.
type FixedSubset struct {
	nums []int
}

// NewFixedSubset validates nums and returns the canonical FixedSubset.
// It fails with ErrInvalidFixedSubset when the count exceeds MaxFixedSize,
// any value falls outside [MinNumber, MaxNumber], or a value repeats.
func NewFixedSubset(nums ...int) (FixedSubset, error) {
	if len(nums) > MaxFixedSize {
		return FixedSubset{}, fmt.Errorf("%w: at most %d numbers, got %d", ErrInvalidFixedSubset, MaxFixedSize, len(nums))
	}
	if err := checkMembers(nums, ErrInvalidFixedSubset); err != nil {
		return FixedSubset{}, err
	}

	out := make([]int, len(nums))
	copy(out, nums)
	sort.Ints(out)
	return FixedSubset{nums: out}, nil
}

// ParseFixedSubset parses the canonical key format produced by Key.
// The empty string parses to the empty subset.
func ParseFixedSubset(key string) (FixedSubset, error) {
	if key == "" {
		return FixedSubset{}, nil
	}
	nums, err := parseKey(key, ErrInvalidFixedSubset)
	if err != nil {
		return FixedSubset{}, err
	}
	return NewFixedSubset(nums...)
}

// Values returns the numbers sorted ascending. The slice is a copy.
func (f FixedSubset) Values() []int {
	out := make([]int, len(f.nums))
	copy(out, f.nums)
	return out
}

// Size returns how many numbers are fixed.
func (f FixedSubset) Size() int {
	return len(f.nums)
}

// Contains reports whether n is one of the fixed numbers.
func (f FixedSubset) Contains(n int) bool {
	for _, v := range f.nums {
		if v == n {
			return true
		}
	}
	return false
}

// Complement returns, sorted ascending, every playable number NOT in the
// subset. This is the pool a generator completes guesses from.
func (f FixedSubset) Complement() []int {
	out := make([]int, 0, UniverseSize-len(f.nums))
	for n := MinNumber; n <= MaxNumber; n++ {
		if !f.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Key returns the canonical zero-padded key, empty for the empty subset.
func (f FixedSubset) Key() string {
	return formatKey(f.nums)
}

// String implements fmt.Stringer using the canonical key.
func (f FixedSubset) String() string {
	return f.Key()
}

// MarshalJSON encodes the subset as a sorted JSON array of numbers.
func (f FixedSubset) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Values())
}

// UnmarshalJSON decodes and validates a JSON array of numbers.
func (f *FixedSubset) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFixedSubset, err)
	}
	parsed, err := NewFixedSubset(raw...)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ComboKey returns the canonical zero-padded key for an arbitrary
// combination of numbers, e.g. "04-23-42". The input is not validated
// beyond ordering; combination enumeration owns its inputs.
func ComboKey(nums []int) string {
	sorted := make([]int, len(nums))
	copy(sorted, nums)
	sort.Ints(sorted)
	return formatKey(sorted)
}

// checkMembers verifies range and uniqueness, wrapping failures in sentinel.
func checkMembers(nums []int, sentinel error) error {
	seen := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("%w: number %d out of range [%d, %d]", sentinel, n, MinNumber, MaxNumber)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: duplicate number %d", sentinel, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// formatKey renders sorted numbers as a zero-padded dash-joined key.
func formatKey(nums []int) string {
	if len(nums) == 0 {
		return ""
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, "-")
}

// parseKey splits a canonical key back into numbers.
func parseKey(key string, sentinel error) ([]int, error) {
	parts := strings.Split(key, "-")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: bad key segment %q", sentinel, p)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

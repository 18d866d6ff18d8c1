package seedtool

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds configuration for the seeding run
type Config struct {
	BaseURL      string        // Base URL of the service
	NumDraws     int           // Number of draws to generate
	NumGuesses   int           // Number of guesses to request
	Fixed        []int         // Fixed numbers carried by every guess
	Commit       bool          // Mark generated guesses as committed bets
	StartContest int           // First contest number to register
	Seed         int64         // Generation seed; 0 derives one from the clock
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	OutputFile   string        // Output file for draws
	LogFile      string        // Log file for run output
	Verify       bool          // Cross-check frequency and stats after seeding
	Verbose      bool          // Enable verbose logging
}

// DrawPayload is the draw registration request body
type DrawPayload struct {
	Contest int    `json:"contest"`
	Date    string `json:"date"`
	Numbers []int  `json:"numbers"`
}

// GuessRequest is the guess generation request body
type GuessRequest struct {
	Fixed  []int `json:"fixed"`
	Count  int   `json:"count"`
	Commit bool  `json:"commit"`
}

// Guess mirrors the guess resource returned by the service
type Guess struct {
	ID        string `json:"id"`
	Numbers   []int  `json:"numbers"`
	Fixed     []int  `json:"fixed"`
	Committed bool   `json:"committed"`
}

// RankedNumber mirrors one entry of the frequency ranking
type RankedNumber struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// FrequencyReport mirrors the per-number frequency report
type FrequencyReport struct {
	Counts map[string]int `json:"counts"`
	Draws  int            `json:"draws"`
}

// FrequencyResponse mirrors the frequency endpoint envelope
type FrequencyResponse struct {
	Report  FrequencyReport `json:"report"`
	Ranking []RankedNumber  `json:"ranking"`
}

// ErrorResponse mirrors the service error envelope
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Stats holds seeding run statistics
type Stats struct {
	DrawsGenerated    int
	SpecialsGenerated int
	DrawsSubmitted    int
	DrawsAdded        int
	DrawsDuplicate    int
	DrawsFailed       int
	GuessesCreated    int
	GuessesCommitted  int
	RankingEntries    int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

// ParseFixed parses a comma-separated list of fixed numbers.
// An empty string yields no fixed numbers.
func ParseFixed(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	fixed := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid fixed number %q: %w", part, err)
		}
		fixed = append(fixed, n)
	}
	return fixed, nil
}

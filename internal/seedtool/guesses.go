package seedtool

import (
	"context"
	"fmt"
	"log"
)

// generateGuesses asks the service to generate guesses around the
// configured fixed numbers, batching requests under the service limit.
func generateGuesses(ctx context.Context, config *Config, stats *Stats) ([]Guess, error) {
	log.Printf("Generating %d guesses (fixed: %v, commit: %v)...", config.NumGuesses, config.Fixed, config.Commit)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/v1/guesses/generate"

	guesses := make([]Guess, 0, config.NumGuesses)
	remaining := config.NumGuesses
	for remaining > 0 {
		count := remaining
		if count > GuessBatchLimit {
			count = GuessBatchLimit
		}

		batch, exhausted, err := generateGuessBatch(ctx, client, url, config, count)
		if err != nil {
			return nil, err
		}
		if exhausted {
			// The distinct-set space around the fixed numbers ran out;
			// asking again would only exhaust again.
			log.Printf("Guess generation exhausted after %d of %d", len(guesses), config.NumGuesses)
			break
		}

		guesses = append(guesses, batch...)
		remaining -= len(batch)
	}

	stats.GuessesCreated = len(guesses)
	for _, guess := range guesses {
		if guess.Committed {
			stats.GuessesCommitted++
		}
	}

	log.Printf(`Guess generation completed:
   Created: %d
   Committed: %d
`, stats.GuessesCreated, stats.GuessesCommitted)

	return guesses, nil
}

// generateGuessBatch requests one batch of generated guesses. The second
// return reports whether the service declared the space exhausted.
func generateGuessBatch(ctx context.Context, client *HTTPClient, url string, config *Config, count int) ([]Guess, bool, error) {
	payload := GuessRequest{
		Fixed:  config.Fixed,
		Count:  count,
		Commit: config.Commit,
	}

	resp, err := client.Post(ctx, url, payload)
	if err != nil {
		return nil, false, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case StatusCreated:
		var batch []Guess
		if err := unmarshalJSON(body, &batch); err != nil {
			return nil, false, fmt.Errorf("failed to parse response: %w", err)
		}
		return batch, false, nil
	case StatusUnprocessable:
		return nil, true, nil
	default:
		var errResp ErrorResponse
		if err := unmarshalJSON(body, &errResp); err == nil && errResp.Error != "" {
			return nil, false, fmt.Errorf("HTTP %d: %s (%s)", resp.StatusCode, errResp.Error, errResp.Detail)
		}
		return nil, false, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
}

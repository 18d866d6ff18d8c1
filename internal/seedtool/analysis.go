package seedtool

import (
	"context"
	"fmt"
	"log"
)

// retrieveFrequency fetches the per-number frequency report and ranking
// over the full stored history.
func retrieveFrequency(ctx context.Context, config *Config, stats *Stats) (*FrequencyResponse, error) {
	log.Println("Retrieving frequency report...")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/v1/frequency"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var freq FrequencyResponse
	if err := unmarshalJSON(body, &freq); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.RankingEntries = len(freq.Ranking)
	log.Printf("Retrieved frequency over %d draws (%d ranked numbers)", freq.Report.Draws, len(freq.Ranking))

	return &freq, nil
}

// retrieveStats fetches the service statistics snapshot.
func retrieveStats(ctx context.Context, config *Config) (map[string]interface{}, error) {
	log.Println("Retrieving service stats...")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/stats"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var snapshot map[string]interface{}
	if err := unmarshalJSON(body, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return snapshot, nil
}

package seedtool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	return io.ReadAll(resp.Body)
}

// submitDraws registers draws concurrently using a worker pool
func submitDraws(ctx context.Context, config *Config, draws []DrawPayload, stats *Stats) error {
	log.Printf("Submitting %d draws with %d workers...", len(draws), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/v1/draws"

	// Counters for statistics
	var (
		added     int64
		duplicate int64
		failed    int64
		submitted int64
	)

	// Progress reporting
	var lastReport int64
	reportInterval := 1 * time.Second

	// Create worker pool
	drawChan := make(chan DrawPayload, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for draw := range drawChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleDraw(ctx, config, client, url, draw)

					// Update counters
					atomic.AddInt64(&submitted, 1)
					switch result {
					case "added":
						atomic.AddInt64(&added, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					// Progress reporting; CAS keeps one reporter per interval
					last := atomic.LoadInt64(&lastReport)
					now := time.Now().UnixNano()
					if now-last >= int64(reportInterval) && atomic.CompareAndSwapInt64(&lastReport, last, now) {
						total := atomic.LoadInt64(&submitted)
						add := atomic.LoadInt64(&added)
						dup := atomic.LoadInt64(&duplicate)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("Progress: %d/%d submitted (added: %d, duplicate: %d, failed: %d)",
								total, len(draws), add, dup, fail)
						} else {
							fmt.Printf("\rSubmitted: %d/%d (added: %d, duplicate: %d, failed: %d)",
								total, len(draws), add, dup, fail)
						}
					}
				}
			}
		}()
	}

	// Send draws to workers
	go func() {
		defer close(drawChan)
		for _, draw := range draws {
			select {
			case <-ctx.Done():
				return
			case drawChan <- draw:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	// Update stats
	stats.DrawsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.DrawsAdded = int(atomic.LoadInt64(&added))
	stats.DrawsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.DrawsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`Draw submission completed:
   Added: %d
   Duplicate: %d
   Failed: %d
`, stats.DrawsAdded, stats.DrawsDuplicate, stats.DrawsFailed)

	if stats.DrawsFailed > 0 && stats.DrawsAdded == 0 && stats.DrawsDuplicate == 0 {
		return fmt.Errorf("all %d draw submissions failed", stats.DrawsFailed)
	}

	return nil
}

// submitSingleDraw registers a single draw and returns the result
func submitSingleDraw(ctx context.Context, config *Config, client *HTTPClient, url string, draw DrawPayload) string {
	resp, err := client.Post(ctx, url, draw)
	if err != nil {
		if config.Verbose {
			log.Printf("Failed to submit contest %d: %v", draw.Contest, err)
		}
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	// Classify by status code
	switch resp.StatusCode {
	case StatusCreated:
		return "added"
	case StatusConflict:
		// Contest already registered
		return "duplicate"
	default:
		if config.Verbose {
			var errResp ErrorResponse
			if err := unmarshalJSON(body, &errResp); err == nil && errResp.Error != "" {
				log.Printf("Contest %d rejected: %s (%s)", draw.Contest, errResp.Error, errResp.Detail)
			} else {
				log.Printf("Contest %d rejected with HTTP %d", draw.Contest, resp.StatusCode)
			}
		}
		return "failed"
	}
}

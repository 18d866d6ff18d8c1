package results

import (
	"net/http"
	"time"
)

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRetryCount sets how many times a failed fetch is retried.
func WithRetryCount(count int) ClientOption {
	return func(c *Client) {
		if count >= 0 {
			c.retryCount = count
		}
	}
}

// WithRetryDelay sets the base delay between retries. The delay grows
// linearly with the attempt number.
func WithRetryDelay(delay time.Duration) ClientOption {
	return func(c *Client) {
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// SyncerOption applies a configuration option to the Syncer.
type SyncerOption func(*Syncer)

// WithWorkers sets the number of concurrent fetch workers.
func WithWorkers(workers int) SyncerOption {
	return func(s *Syncer) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithQueueSize sets the capacity of the contest feed queue.
func WithQueueSize(size int) SyncerOption {
	return func(s *Syncer) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

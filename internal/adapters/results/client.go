// Package results fetches official draws from a Caixa-style results API and
// backfills missing contests into the draw store.
package results

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
	"github.com/stevillis/megasena/pkg/logger"
	"github.com/stevillis/megasena/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout    = 10 * time.Second
	defaultRetryCount = 2
	defaultRetryDelay = 500 * time.Millisecond
)

// Accepted upstream date layouts, slash format first since the live API
// uses it.
var upstreamDateLayouts = []string{"02/01/2006", "2006-01-02"}

// Client fetches draw results over HTTP with bounded retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retryCount int
	retryDelay time.Duration

	logger logger.Logger
}

// NewClient creates a results client for the given API base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		retryCount: defaultRetryCount,
		retryDelay: defaultRetryDelay,
		logger:     logger.Get().Named("results"),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the official draw for one contest.
func (c *Client) Fetch(ctx context.Context, contest int) (model.Draw, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/megasena/%d", c.baseURL, contest))
}

// Latest returns the most recent official draw.
func (c *Client) Latest(ctx context.Context) (model.Draw, error) {
	return c.fetch(ctx, c.baseURL+"/megasena/latest")
}

// fetch runs the retry loop around one URL. Transport and upstream-status
// failures are retried with linearly growing delays; payload decode failures
// are not, since retrying cannot fix a bad document.
func (c *Client) fetch(ctx context.Context, url string) (model.Draw, error) {
	start := time.Now()
	defer func() {
		metrics.RecordSyncFetchDuration(float64(time.Since(start).Milliseconds()))
	}()

	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			c.logger.Warn(ctx, "retrying results fetch",
				logger.String("url", url),
				logger.Int("attempt", attempt),
			)
			select {
			case <-ctx.Done():
				return model.Draw{}, ctx.Err()
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			}
		}

		draw, err := c.get(ctx, url)
		if err == nil {
			return draw, nil
		}
		if errors.Is(err, ErrBadPayload) {
			metrics.RecordErrorByComponent("results", "bad_payload")
			return model.Draw{}, err
		}
		if ctx.Err() != nil {
			return model.Draw{}, err
		}
		lastErr = err
	}

	metrics.RecordErrorByComponent("results", "upstream")
	return model.Draw{}, fmt.Errorf("fetch %s after %d attempts: %w", url, c.retryCount+1, lastErr)
}

// get performs a single request and decodes the response.
func (c *Client) get(ctx context.Context, url string) (model.Draw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Draw{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Draw{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Draw{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Draw{}, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	return parseDraw(body)
}

// parseDraw decodes one upstream document into a validated Draw.
func parseDraw(body []byte) (model.Draw, error) {
	doc := gjson.ParseBytes(body)

	contest := doc.Get("concurso")
	date := doc.Get("data")
	dezenas := doc.Get("dezenas")
	if !contest.Exists() || !date.Exists() || !dezenas.IsArray() {
		return model.Draw{}, fmt.Errorf("%w: missing concurso, data or dezenas", ErrBadPayload)
	}

	drawDate, err := parseUpstreamDate(date.String())
	if err != nil {
		return model.Draw{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	items := dezenas.Array()
	nums := make([]int, 0, len(items))
	for _, item := range items {
		nums = append(nums, int(item.Int()))
	}
	set, err := types.NewNumberSet(nums...)
	if err != nil {
		return model.Draw{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	draw, err := model.NewDraw(int(contest.Int()), drawDate, set)
	if err != nil {
		return model.Draw{}, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return draw, nil
}

func parseUpstreamDate(cell string) (time.Time, error) {
	for _, layout := range upstreamDateLayouts {
		if date, err := time.Parse(layout, cell); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}

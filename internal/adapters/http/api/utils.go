// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// drawDateLayouts are the accepted wire formats for draw dates, ISO first.
var drawDateLayouts = []string{"2006-01-02", "02/01/2006"}

// parseDrawDate parses a draw date in ISO or Brazilian day-first form.
func parseDrawDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range drawDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrBadRequest, raw)
}

// drawScopeFrom assembles a draw scope from its wire fields. An empty scope
// name means the full history.
func drawScopeFrom(scope string, from, to int) (DrawScope, error) {
	s := DrawScope{FromContest: from, ToContest: to}
	switch scope {
	case "", "all":
	case "special":
		s.SpecialOnly = true
	default:
		return DrawScope{}, fmt.Errorf("%w: unknown scope %q", ErrBadRequest, scope)
	}
	return s, nil
}

// parseDrawScope reads scope, from and to query parameters.
func parseDrawScope(q url.Values) (DrawScope, error) {
	from, err := parseCount(q, "from", 0)
	if err != nil {
		return DrawScope{}, err
	}
	to, err := parseCount(q, "to", 0)
	if err != nil {
		return DrawScope{}, err
	}
	return drawScopeFrom(q.Get("scope"), from, to)
}

// parseCount reads an optional non-negative integer query parameter,
// falling back to def when the parameter is absent.
func parseCount(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, key, raw)
	}
	return n, nil
}

// parseNumberList parses a comma-separated list of numbers, as used by the
// draw search endpoint.
func parseNumberList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: missing numbers", ErrBadRequest)
	}
	parts := strings.Split(raw, ",")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrBadRequest, part)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Client downloads a league feed over HTTP. The endpoint may return the bare
// season array, or pages of it wrapped as {"data": [...], "meta":
// {"next_cursor": n}}, which are followed until the cursor runs out.
type Client struct {
	httpClient *http.Client
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a feed client. requestsPerMinute <= 0 disables the limiter.
func NewClient(apiKey string, requestsPerMinute int, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

type page struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		NextCursor *int `json:"next_cursor"`
	} `json:"meta"`
}

// Fetch downloads every page of the feed at rawURL.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]Season, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("feed url: %w", err)
	}

	var (
		all    []Season
		cursor *int
	)
	for pages := 1; ; pages++ {
		u := *base
		if cursor != nil {
			q := u.Query()
			q.Set("cursor", strconv.Itoa(*cursor))
			u.RawQuery = q.Encode()
		}
		body, err := c.get(ctx, u.String())
		if err != nil {
			return nil, err
		}

		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			seasons, err := Decode(bytes.NewReader(trimmed))
			if err != nil {
				return nil, err
			}
			return append(all, seasons...), nil
		}

		var p page
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("decode feed page %d: %w", pages, err)
		}
		seasons, err := Decode(bytes.NewReader(p.Data))
		if err != nil {
			return nil, fmt.Errorf("feed page %d: %w", pages, err)
		}
		all = append(all, seasons...)
		c.logger.Debug("Fetched feed page", "page", pages, "seasons", len(seasons))

		if p.Meta.NextCursor == nil {
			return all, nil
		}
		cursor = p.Meta.NextCursor
	}
}

// get performs a rate-limited GET request.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned %d: %s", u, resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

// truncate shortens a body for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}

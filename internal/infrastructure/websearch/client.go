// Package websearch queries a news-search API for articles related to a
// title. Upstream failures degrade to an empty candidate set after retries;
// discovery never fails a scoring run on its own.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"NewsTrust/internal/domain"
	"NewsTrust/internal/ports"
	"NewsTrust/internal/retry"
)

const apiKeyHeader = "Ocp-Apim-Subscription-Key"

// Client talks to a Bing-compatible news search endpoint.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	retry    retry.Config
	logger   *slog.Logger
}

var _ ports.Searcher = (*Client)(nil)

// New creates a reusable search client.
func New(endpoint, apiKey string, timeout time.Duration, retryCfg retry.Config, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if retryCfg.MaxAttempts <= 0 {
		retryCfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
		retry:    retryCfg,
		logger:   logger,
	}
}

// searchResponse mirrors the relevant part of the API payload.
type searchResponse struct {
	Value []struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	} `json:"value"`
}

// Search requests articles matching the title, newest first, optionally
// restricted to those published after since.
func (c *Client) Search(ctx context.Context, title string, since *time.Time) ([]domain.Candidate, error) {
	requestURL, err := c.buildURL(title, since)
	if err != nil {
		return nil, nil
	}

	var decoded searchResponse
	err = retry.WithRetry(ctx, c.retry, func() error {
		return c.fetch(ctx, requestURL, &decoded)
	})
	if err != nil {
		c.logger.Error("search request failed", "title", title, "error", err)
		return nil, nil
	}

	candidates := make([]domain.Candidate, 0, len(decoded.Value))
	for _, item := range decoded.Value {
		candidates = append(candidates, domain.Candidate{URL: item.URL, Title: item.Name})
	}
	return candidates, nil
}

func (c *Client) buildURL(title string, since *time.Time) (string, error) {
	parsed, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	query.Set("q", title)
	query.Set("sortBy", "date")
	if since != nil {
		query.Set("since", strconv.FormatInt(since.Unix(), 10))
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func (c *Client) fetch(ctx context.Context, requestURL string, decoded *searchResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(decoded); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Pavan1214/prompts/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Prompts/1.0"
)

// Client implements domain.FeedRepository against the remote image API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new feed API client. baseURL is the collection
// endpoint (no trailing slash).
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an HTTP request and returns the response body.
func (c *Client) doRequest(ctx context.Context, method, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("feed request", "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("feed request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrItemNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("feed request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: unexpected status code %d", domain.ErrFeedUnavailable, resp.StatusCode)
	}

	return body, nil
}

// FetchAll returns the full item collection.
func (c *Client) FetchAll(ctx context.Context) ([]domain.FeedItem, error) {
	body, err := c.doRequest(ctx, http.MethodGet, c.baseURL)
	if err != nil {
		return nil, err
	}

	var records []imageRecord
	if err := json.Unmarshal(body, &records); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrFeedUnavailable, err)
	}

	return mapItems(records), nil
}

// Like increments the remote like counter and returns the updated count.
func (c *Client) Like(ctx context.Context, id string) (int, error) {
	return c.patchCounter(ctx, id, "like")
}

// Unlike decrements the remote like counter and returns the updated count.
func (c *Client) Unlike(ctx context.Context, id string) (int, error) {
	return c.patchCounter(ctx, id, "unlike")
}

func (c *Client) patchCounter(ctx context.Context, id, action string) (int, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, id, action)
	body, err := c.doRequest(ctx, http.MethodPatch, url)
	if err != nil {
		return 0, err
	}

	var record imageRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return 0, fmt.Errorf("failed to parse %s response: %w", action, err)
	}
	return record.Likes, nil
}

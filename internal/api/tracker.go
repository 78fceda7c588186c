package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Tracker sends the anonymous view-tracking beacon. It is a
// fire-and-forget collaborator: a failed beacon is logged and never
// affects the feed.
type Tracker struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewTracker creates a new view tracker.
func NewTracker(endpoint string, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

type trackPayload struct {
	VisitorID string `json:"visitorId"`
	PageURL   string `json:"pageUrl"`
}

// TrackView posts a single page-view event.
func (t *Tracker) TrackView(ctx context.Context, visitorID, pageURL string) error {
	payload, err := json.Marshal(trackPayload{VisitorID: visitorID, PageURL: pageURL})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("tracking endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

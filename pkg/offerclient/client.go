package offerclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tripsearch/pkg/logger"
)

// Client talks to the upstream offers API. All methods return
// recoverable errors; callers convert failures to view state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Client
}

func New(httpClient *http.Client, baseURL string, logger logger.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("failed to build offers request", logger.Field{Key: "error", Value: err})
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("external api call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("external api returned non-200 status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode offers response: %w", err)
	}
	return nil
}

package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when the catalog API answers 404.
var ErrNotFound = errors.New("resource not found")

const defaultAPITimeout = 10 * time.Second

// APIClient is a read-only JSON client for the catalog API.
type APIClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// ConnectAPI validates baseURL and returns a client whose requests time out after timeout.
// A zero timeout falls back to ten seconds.
func ConnectAPI(baseURL string, timeout time.Duration, logger *zap.Logger) (*APIClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultAPITimeout
	}

	return &APIClient{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Get requests the resource at the base URL joined with elem and decodes the JSON body into out.
func (c *APIClient) Get(ctx context.Context, out any, elem ...string) error {
	endpoint := c.baseURL.JoinPath(elem...).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to call catalog api", zap.String("url", endpoint), zap.Error(err))
		return fmt.Errorf("failed to call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.Error("Unexpected catalog api status", zap.String("url", endpoint), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode catalog api response", zap.String("url", endpoint), zap.Error(err))
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}

	return nil
}

package nbacdn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
	"github.com/preston-bernstein/nba-tonight/internal/providers"
)

// Config controls how the client reaches the league CDN.
type Config struct {
	UserAgent  string
	HTTPClient *http.Client
}

// Client downloads the season schedule feed and maps it to domain models.
type Client struct {
	httpClient httpDoer
	userAgent  string
}

// NewClient constructs a CDN client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		userAgent:  resolveUserAgent(cfg.UserAgent),
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string {
	return providerName
}

// FetchSchedule makes a single GET against url (or the default feed when
// empty) and returns the parsed schedule.
func (c *Client) FetchSchedule(ctx context.Context, url string) (schedule.Schedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolveURL(url), nil)
	if err != nil {
		return schedule.Schedule{}, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("%s: request failed: %w", providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return schedule.Schedule{}, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return schedule.Schedule{}, fmt.Errorf("%s: decode: %w", providerName, err)
	}

	return mapSchedule(payload)
}

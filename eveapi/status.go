// Package eveapi contains a minimal client for the game server status
// endpoint: whether Tranquility is open, its current time, and how many
// players are logged in.
package eveapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/onnwee/evespai/lookup"
)

// ServerStatus is the decoded status response.
type ServerStatus struct {
	Open          bool
	CurrentTime   time.Time
	OnlinePlayers int
}

// StatusClient fetches server status. BaseURL and HTTPClient are overridable
// for tests; zero values use the public endpoint with a short timeout.
type StatusClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (c *StatusClient) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (c *StatusClient) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return "https://api.eveonline.com"
}

// Get queries the server status endpoint. Connection, HTTP, and decode
// failures all surface as lookup.ErrUpstream.
func (c *StatusClient) Get(ctx context.Context) (ServerStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base()+"/server/status", nil)
	if err != nil {
		return ServerStatus{}, fmt.Errorf("build status request: %w", err)
	}
	resp, err := c.http().Do(req)
	if err != nil {
		return ServerStatus{}, fmt.Errorf("server status: %v: %w", err, lookup.ErrUpstream)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return ServerStatus{}, fmt.Errorf("server status: http %d: %w", resp.StatusCode, lookup.ErrUpstream)
	}
	var body struct {
		ServerOpen    bool  `json:"serverOpen"`
		CurrentTime   int64 `json:"currentTime"`
		OnlinePlayers int   `json:"onlinePlayers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ServerStatus{}, fmt.Errorf("decode server status: %v: %w", err, lookup.ErrUpstream)
	}
	return ServerStatus{
		Open:          body.ServerOpen,
		CurrentTime:   time.Unix(body.CurrentTime, 0).UTC(),
		OnlinePlayers: body.OnlinePlayers,
	}, nil
}

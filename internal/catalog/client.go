package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client talks to the hosted catalog/storage backend.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// signedURLResponse is the backend's response to a sign request.
type signedURLResponse struct {
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}

// SignedStreamURL requests a time-limited signed URL for the track source.
// This is the primary resolution strategy.
func (c *Client) SignedStreamURL(ctx context.Context, ref SourceRef) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/streams/sign?source=%s", c.baseURL, url.QueryEscape(string(ref)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build sign request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign stream url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sign stream url: status %d", resp.StatusCode)
	}

	var signed signedURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&signed); err != nil {
		return "", fmt.Errorf("decode sign response: %w", err)
	}
	if signed.URL == "" {
		return "", fmt.Errorf("sign stream url: empty url in response")
	}
	return signed.URL, nil
}

// PublicStreamURL returns the stable public URL for the track source,
// confirming with a HEAD request that the stream is actually there.
// This is the fallback resolution strategy when signing fails.
func (c *Client) PublicStreamURL(ctx context.Context, ref SourceRef) (string, error) {
	streamURL := fmt.Sprintf("%s/public/streams/%s", c.baseURL, url.PathEscape(string(ref)))

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, streamURL, nil)
	if err != nil {
		return "", fmt.Errorf("build public stream request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("check public stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("check public stream: status %d", resp.StatusCode)
	}
	return streamURL, nil
}

// playEventRequest is the analytics payload for a completed (or skipped) play.
type playEventRequest struct {
	TrackID       string  `json:"track_id"`
	SessionID     string  `json:"session_id"`
	PlayedSeconds float64 `json:"played_seconds"`
}

// RecordPlayEvent reports a play to the backend for analytics.
// Best effort: callers log failures but never let them affect playback.
func (c *Client) RecordPlayEvent(ctx context.Context, trackID, sessionID string, played time.Duration) error {
	body, err := json.Marshal(playEventRequest{
		TrackID:       trackID,
		SessionID:     sessionID,
		PlayedSeconds: played.Seconds(),
	})
	if err != nil {
		return fmt.Errorf("encode play event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/plays", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build play event request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("record play event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("record play event: status %d", resp.StatusCode)
	}
	return nil
}

// CoverURL returns the public URL for a track's cover image, or ""
// when the track has none.
func (c *Client) CoverURL(ref string) string {
	if ref == "" {
		return ""
	}
	return fmt.Sprintf("%s/public/covers/%s", c.baseURL, url.PathEscape(ref))
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	ngrokAttempts = 10
	ngrokInterval = 3 * time.Second
)

// ngrokTunnels matches the /api/tunnels response of the ngrok local API.
type ngrokTunnels struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// detectNgrokURL polls the ngrok local API for a public tunnel URL, preferring
// HTTPS. ngrok often comes up after this process (compose start order), so it
// retries for up to 30 seconds before giving up.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string) (string, error) {
	url := ngrokAPIBase + "/api/tunnels"
	client := &http.Client{Timeout: 5 * time.Second}

	for attempt := 1; attempt <= ngrokAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(ngrokInterval):
			}
		}

		tunnelURL, err := fetchTunnelURL(ctx, client, url)
		if err != nil {
			if attempt == ngrokAttempts {
				return "", fmt.Errorf("ngrok API not reachable after %d attempts: %w", ngrokAttempts, err)
			}
			continue
		}
		if tunnelURL != "" {
			return tunnelURL, nil
		}
		// Reachable but no tunnels yet: ngrok is still starting up.
	}

	return "", fmt.Errorf("ngrok has no active tunnels after %d attempts", ngrokAttempts)
}

func fetchTunnelURL(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnels
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}
	return "", nil
}

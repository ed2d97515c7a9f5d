package util

import (
	"context"
	"io"
	"net/http"
	"time"
)

// GetBytes fetches a URL and returns the response body and status code. A
// fresh client is used per call; no connection state is kept across calls.
func GetBytes(ctx context.Context, url string) ([]byte, int, error) {
	client := http.Client{Timeout: 12 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

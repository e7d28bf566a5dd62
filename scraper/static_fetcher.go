package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxBodySize bounds the response read to prevent unbounded memory use.
const maxBodySize = 10 << 20 // 10 MB

// StaticFetcher issues a plain HTTP GET with browser-like headers. Fast,
// but won't see content that only exists after client-side rendering.
type StaticFetcher struct {
	client *http.Client
}

// NewStaticFetcher creates a static fetcher with the given timeout.
func NewStaticFetcher(timeout time.Duration) *StaticFetcher {
	return &StaticFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *StaticFetcher) Name() string { return "static" }

// Fetch performs the GET and returns the response body. A transport error
// and a non-2xx status are equally failures, so the strategy selector can
// fall back to the browser in both cases.
func (f *StaticFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %v", err)
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-ZA,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %v", err)
	}

	return string(body), nil
}

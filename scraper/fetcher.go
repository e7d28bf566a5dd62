package scraper

import (
	"context"
	"time"
)

// Fetcher retrieves the raw page markup for a URL. The two implementations
// (static HTTP and browser-rendered) sit behind this interface so the
// strategy selector, and tests, can substitute backends freely.
type Fetcher interface {
	// Name returns the backend identifier (e.g. "static", "browser").
	Name() string

	// Fetch retrieves the page markup. Transport errors, non-2xx statuses
	// and browser-automation failures all surface as errors here; the
	// caller maps every one of them to "this strategy produced no price".
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchConfig holds the fixed timing constants of both fetch backends.
// Passed in at construction so tests can vary them deterministically.
type FetchConfig struct {
	StaticTimeout time.Duration // connect/read timeout of the static fetch
	BodyWait      time.Duration // bounded wait for the body element to appear
	SettleDelay   time.Duration // extra delay for client-side rendering to populate
}

// DefaultFetchConfig returns the timings used in production.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		StaticTimeout: 10 * time.Second,
		BodyWait:      15 * time.Second,
		SettleDelay:   3 * time.Second,
	}
}

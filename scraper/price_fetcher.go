package scraper

import (
	"context"
	"log"
)

// PriceFetcher orchestrates the two content-acquisition backends and hands
// the resulting markup to the extractor. One invocation per call; no state
// is shared between calls.
type PriceFetcher struct {
	static    Fetcher
	browser   Fetcher
	extractor *Extractor
}

// NewPriceFetcher wires the production backends with the given timings.
func NewPriceFetcher(config FetchConfig) *PriceFetcher {
	parser := NewParser(DefaultParserConfig())
	return &PriceFetcher{
		static:    NewStaticFetcher(config.StaticTimeout),
		browser:   NewBrowserFetcher(config),
		extractor: NewExtractor(parser),
	}
}

// NewPriceFetcherWithBackends builds a fetcher from explicit backends, so
// tests can substitute fakes without any real network or browser.
func NewPriceFetcherWithBackends(static, browser Fetcher, extractor *Extractor) *PriceFetcher {
	return &PriceFetcher{
		static:    static,
		browser:   browser,
		extractor: extractor,
	}
}

// FetchPrice fetches the page and extracts a price. The static fetch is
// tried first unless forceBrowser is set; any static failure, including
// extraction coming up empty, falls back to the browser-rendered fetch.
// A missing price is a normal outcome, not an error: the caller only ever
// sees (price, true) or (0, false).
func (pf *PriceFetcher) FetchPrice(ctx context.Context, url, cssSelector string, forceBrowser bool) (float64, bool) {
	if forceBrowser {
		log.Printf("Browser rendering forced for %s", url)
		return pf.fetchWith(ctx, pf.browser, url, cssSelector)
	}

	log.Printf("Trying static fetch for %s", url)
	html, err := pf.static.Fetch(ctx, url)
	if err != nil {
		log.Printf("Static fetch failed for %s: %v", url, err)
	} else {
		if price, ok := pf.extractor.Extract(html, cssSelector); ok {
			return price, true
		}
		// The transport succeeded but no price validated; the content is
		// probably rendered client-side, so the browser is still worth a try.
		log.Printf("No price in static markup for %s, retrying with browser rendering", url)
	}

	return pf.fetchWith(ctx, pf.browser, url, cssSelector)
}

// fetchWith runs one backend and extracts from its markup. Backend errors
// degrade to a no-price result.
func (pf *PriceFetcher) fetchWith(ctx context.Context, fetcher Fetcher, url, cssSelector string) (float64, bool) {
	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		log.Printf("%s fetch failed for %s: %v", fetcher.Name(), url, err)
		return 0, false
	}

	price, ok := pf.extractor.Extract(html, cssSelector)
	if !ok {
		log.Printf("No price detected in %s markup for %s", fetcher.Name(), url)
	}
	return price, ok
}

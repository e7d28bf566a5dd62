package scraper

import (
	"context"
	"errors"
	"testing"
)

// fakeFetcher is a canned backend for exercising the strategy selection
// without any real network or browser.
type fakeFetcher struct {
	name  string
	html  string
	err   error
	calls int
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

func newFakePriceFetcher(static, browser *fakeFetcher) *PriceFetcher {
	extractor := NewExtractor(NewParser(DefaultParserConfig()))
	return NewPriceFetcherWithBackends(static, browser, extractor)
}

func TestFetchPrice_StaticSuccessShortCircuits(t *testing.T) {
	static := &fakeFetcher{name: "static", html: `<span class="price">R120.00</span>`}
	browser := &fakeFetcher{name: "browser"}
	pf := newFakePriceFetcher(static, browser)

	price, ok := pf.FetchPrice(context.Background(), "http://example.com/p", "", false)
	if !ok || price != 120 {
		t.Fatalf("expected 120, got %v, %v", price, ok)
	}
	if browser.calls != 0 {
		t.Error("browser fetch should not run when the static fetch yields a price")
	}
}

func TestFetchPrice_EmptyStaticMarkupTriggersBrowserRetry(t *testing.T) {
	static := &fakeFetcher{name: "static", html: `<html><body><p>Loading...</p></body></html>`}
	browser := &fakeFetcher{name: "browser", html: `<span class="price">$49.99</span>`}
	pf := newFakePriceFetcher(static, browser)

	price, ok := pf.FetchPrice(context.Background(), "http://example.com/p", "", false)
	if !ok {
		t.Fatal("expected the browser retry to find a price")
	}
	if price != 49.99 {
		t.Errorf("expected 49.99, got %v", price)
	}
	if static.calls != 1 || browser.calls != 1 {
		t.Errorf("expected both backends to run once, got static=%d browser=%d", static.calls, browser.calls)
	}
}

func TestFetchPrice_StaticTransportFailureFallsBack(t *testing.T) {
	static := &fakeFetcher{name: "static", err: errors.New("connection refused")}
	browser := &fakeFetcher{name: "browser", html: `<div itemprop="price">R85.00</div>`}
	pf := newFakePriceFetcher(static, browser)

	price, ok := pf.FetchPrice(context.Background(), "http://example.com/p", "", false)
	if !ok || price != 85 {
		t.Fatalf("expected 85 from the browser fallback, got %v, %v", price, ok)
	}
}

func TestFetchPrice_ForceBrowserSkipsStatic(t *testing.T) {
	static := &fakeFetcher{name: "static", html: `<span class="price">R10.50</span>`}
	browser := &fakeFetcher{name: "browser", html: `<span class="price">R99.00</span>`}
	pf := newFakePriceFetcher(static, browser)

	price, ok := pf.FetchPrice(context.Background(), "http://example.com/p", "", true)
	if !ok || price != 99 {
		t.Fatalf("expected 99 from the browser, got %v, %v", price, ok)
	}
	if static.calls != 0 {
		t.Error("static fetch should not run when browser rendering is forced")
	}
}

func TestFetchPrice_BothStrategiesExhausted(t *testing.T) {
	static := &fakeFetcher{name: "static", err: errors.New("timeout")}
	browser := &fakeFetcher{name: "browser", html: `<html><body><p>no offers</p></body></html>`}
	pf := newFakePriceFetcher(static, browser)

	if _, ok := pf.FetchPrice(context.Background(), "http://example.com/p", "", false); ok {
		t.Error("expected no price when both strategies come up empty")
	}
}

func TestFetchPrice_BrowserErrorDegradesToNoMatch(t *testing.T) {
	static := &fakeFetcher{name: "static", err: errors.New("dns failure")}
	browser := &fakeFetcher{name: "browser", err: errors.New("chromium not found")}
	pf := newFakePriceFetcher(static, browser)

	if _, ok := pf.FetchPrice(context.Background(), "http://example.com/p", "", false); ok {
		t.Error("expected no price when both backends fail")
	}
}

func TestFetchPrice_SelectorForwardedToExtractor(t *testing.T) {
	static := &fakeFetcher{name: "static", html: `
		<span class="price">R99.00</span>
		<div id="deal">R45.50</div>`}
	browser := &fakeFetcher{name: "browser"}
	pf := newFakePriceFetcher(static, browser)

	price, ok := pf.FetchPrice(context.Background(), "http://example.com/p", "#deal", false)
	if !ok || price != 45.5 {
		t.Fatalf("expected the selector element's 45.50, got %v, %v", price, ok)
	}
}

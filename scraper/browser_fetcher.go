package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// browserSession is the minimal surface of a browser-automation session used
// during one render: navigate, wait for the body, settle, capture markup,
// dispose. Abstracted so tests can assert disposal with a fake backend.
type browserSession interface {
	Navigate(url string) error
	WaitBody(timeout time.Duration) error
	Settle(d time.Duration)
	HTML() (string, error)
	Close()
}

// BrowserFetcher renders a page in a headless browser before capturing its
// markup. Slow, but sees content populated by client-side frameworks.
type BrowserFetcher struct {
	config FetchConfig

	// newSession launches a fresh browser. Swapped out in tests.
	newSession func() (browserSession, error)
}

// NewBrowserFetcher creates a browser-rendered fetcher with the given
// timings. Each Fetch call owns its own browser session.
func NewBrowserFetcher(config FetchConfig) *BrowserFetcher {
	return &BrowserFetcher{
		config:     config,
		newSession: newRodSession,
	}
}

func (f *BrowserFetcher) Name() string { return "browser" }

// Fetch launches a browser, navigates, waits for the body element, applies
// the settle delay and returns the fully rendered DOM serialization. The
// session is disposed on every exit path. Missing browser tooling surfaces
// as an ordinary error, never a panic.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	sess, err := f.newSession()
	if err != nil {
		return "", fmt.Errorf("browser automation unavailable: %v", err)
	}
	defer sess.Close()

	if err := sess.Navigate(url); err != nil {
		return "", fmt.Errorf("navigation failed: %v", err)
	}

	if err := sess.WaitBody(f.config.BodyWait); err != nil {
		return "", fmt.Errorf("page body did not appear: %v", err)
	}

	// Give client-side rendering frameworks time to populate content.
	sess.Settle(f.config.SettleDelay)

	html, err := sess.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to capture rendered markup: %v", err)
	}

	return html, nil
}

// rodSession drives a real Chromium instance through go-rod.
type rodSession struct {
	browser *rod.Browser
	kill    func()
	page    *rod.Page
}

// newRodSession launches headless Chromium with sandboxing and GPU
// acceleration disabled and a fixed desktop viewport.
func newRodSession() (browserSession, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-gpu").
		Leakless(false)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.Close()
		l.Kill()
		return nil, err
	}

	viewport := &proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}
	if err := page.SetViewport(viewport); err != nil {
		browser.Close()
		l.Kill()
		return nil, err
	}

	return &rodSession{browser: browser, kill: l.Kill, page: page}, nil
}

func (s *rodSession) Navigate(url string) error {
	return s.page.Navigate(url)
}

func (s *rodSession) WaitBody(timeout time.Duration) error {
	_, err := s.page.Timeout(timeout).Element("body")
	return err
}

func (s *rodSession) Settle(d time.Duration) {
	time.Sleep(d)
}

func (s *rodSession) HTML() (string, error) {
	return s.page.HTML()
}

func (s *rodSession) Close() {
	if err := s.browser.Close(); err != nil {
		log.Printf("Failed to close browser: %v", err)
	}
	s.kill()
}

// Package browser renders JavaScript-heavy pages through headless Chrome.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/kwonth211/podcastify/internal/config"
	"github.com/kwonth211/podcastify/internal/ports"
)

const (
	defaultTimeout = 30 * time.Second
	defaultSettle  = 2 * time.Second
)

// FetchError wraps navigation, network, and browser-launch failures. It is
// fatal for the current run: without rendered HTML no headlines exist.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher owns a long-lived headless browser context. Construct once, call
// Render per page, and Close on every exit path.
type Fetcher struct {
	allocCtx      context.Context
	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc

	timeout time.Duration
	settle  time.Duration
}

var _ ports.PageRenderer = (*Fetcher)(nil)

// NewFetcher starts a reusable headless browser with the configured user
// agent and locale.
func NewFetcher(cfg config.FetcherConfig) *Fetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("accept-lang", cfg.AcceptLanguage),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.UserAgent(cfg.UserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	timeout := cfg.NavigationTimeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	settle := cfg.SettleDelay()
	if settle <= 0 {
		settle = defaultSettle
	}

	return &Fetcher{
		allocCtx:      allocCtx,
		cancelAlloc:   cancelAlloc,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
		timeout:       timeout,
		settle:        settle,
	}
}

// Render navigates to the page, waits the fixed settle delay for
// client-side rendering, and returns the document's outer HTML. The whole
// fetch is bounded by the navigation timeout.
func (f *Fetcher) Render(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}

	runCtx, cancel := context.WithTimeout(f.browserCtx, f.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(f.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}

	return html, nil
}

// Close tears down the browser and allocator contexts.
func (f *Fetcher) Close() {
	if f.cancelBrowser != nil {
		f.cancelBrowser()
	}
	if f.cancelAlloc != nil {
		f.cancelAlloc()
	}
}

package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"

	"quiz-solver-service/internal/app"
)

// Options configure how quiz pages are loaded.
type Options struct {
	Headless       bool
	ExecutablePath string
	NavTimeout     time.Duration
}

// Fetcher loads quiz pages through headless Chromium. The Playwright driver
// is shared across runs; every Fetch launches its own browser instance so
// concurrent runs stay fully isolated.
type Fetcher struct {
	pw   *playwright.Playwright
	opts Options
	log  zerolog.Logger
}

func NewFetcher(opts Options, log zerolog.Logger) (*Fetcher, error) {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright driver: %w", err)
	}
	return &Fetcher{pw: pw, opts: opts, log: log}, nil
}

// Close stops the shared Playwright driver.
func (f *Fetcher) Close() error {
	return f.pw.Stop()
}

// Fetch launches a single-use browser, navigates to url, and returns a page
// handle plus the teardown function. On any failure the browser is already
// torn down before the error returns.
func (f *Fetcher) Fetch(_ context.Context, url string) (app.Page, func(), error) {
	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(f.opts.Headless),
	}
	if f.opts.ExecutablePath != "" {
		launch.ExecutablePath = playwright.String(f.opts.ExecutablePath)
	}
	browser, err := f.pw.Chromium.Launch(launch)
	if err != nil {
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}
	release := func() {
		if err := browser.Close(); err != nil {
			f.log.Warn().Err(err).Msg("browser close failed")
		}
	}

	page, err := browser.NewPage()
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("open page: %w", err)
	}
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(f.opts.NavTimeout.Milliseconds())),
	}); err != nil {
		release()
		return nil, nil, fmt.Errorf("navigate to %s: %w", url, err)
	}
	return &browserPage{page: page}, release, nil
}

type browserPage struct {
	page playwright.Page
}

func (p *browserPage) Evaluate(expression string) (string, error) {
	value, err := p.page.Evaluate(expression)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected string result from evaluate, got %T", value)
	}
	return s, nil
}

func (p *browserPage) Content() (string, error) {
	return p.page.Content()
}

package driver

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver launches browsers through a shared Playwright runtime.
// One runtime serves all sessions; each Launch gets its own browser process,
// context, and page so sessions stay isolated.
type PlaywrightDriver struct {
	pw *playwright.Playwright
}

// StartPlaywright installs the Playwright runtime if needed and starts it.
func StartPlaywright() (*PlaywrightDriver, error) {
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	return &PlaywrightDriver{pw: pw}, nil
}

// Stop shuts down the Playwright runtime. Pages launched from this driver
// must be closed first.
func (d *PlaywrightDriver) Stop() error {
	if err := d.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

// Launch starts a browser, creates an isolated context and page, and returns
// the page. The context is consulted between blocking steps so a cancelled
// launch does not leak a half-built browser.
func (d *PlaywrightDriver) Launch(ctx context.Context, opts Options) (Page, error) {
	browserType := d.pw.Chromium
	if opts.Browser == "firefox" {
		browserType = d.pw.Firefox
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	if err := ctx.Err(); err != nil {
		browser.Close()
		return nil, err
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	}
	if opts.UserAgent != "" {
		contextOpts.UserAgent = playwright.String(opts.UserAgent)
	}

	browserCtx, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if err := ctx.Err(); err != nil {
		page.Close()
		browserCtx.Close()
		browser.Close()
		return nil, err
	}

	return &playwrightPage{
		browser: browser,
		context: browserCtx,
		page:    page,
	}, nil
}

type playwrightPage struct {
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// gotoOptions builds navigation options waiting for the network to go idle.
// The generated enum constants are already pointers, so they are assigned
// directly rather than re-addressed.
func gotoOptions(timeout time.Duration) playwright.PageGotoOptions {
	return playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	}
}

// waitVisibleOptions builds selector-wait options for a visible element.
func waitVisibleOptions(timeout time.Duration) playwright.PageWaitForSelectorOptions {
	return playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}
}

func (p *playwrightPage) Navigate(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, gotoOptions(timeout))
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (p *playwrightPage) ClickFirst(selectors []string, timeout time.Duration) (string, error) {
	var lastErr error

	for _, selector := range selectors {
		element, err := p.page.WaitForSelector(selector, waitVisibleOptions(timeout))
		if err != nil || element == nil {
			lastErr = err
			continue
		}
		if err := element.Click(); err != nil {
			lastErr = err
			continue
		}
		return selector, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("no selector matched: %w", lastErr)
	}
	return "", fmt.Errorf("no selector matched")
}

func (p *playwrightPage) WaitVisible(selector string, timeout time.Duration) error {
	_, err := p.page.WaitForSelector(selector, waitVisibleOptions(timeout))
	if err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}
	return nil
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Close() error {
	// Ignore per-resource errors, continue cleanup
	_ = p.page.Close()
	_ = p.context.Close()
	if err := p.browser.Close(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

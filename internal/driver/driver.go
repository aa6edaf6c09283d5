// Package driver wraps browser automation behind small interfaces so the
// session layer can be exercised without a real browser.
package driver

import (
	"context"
	"time"
)

// Options configures a browser launch.
type Options struct {
	// Browser selects the engine: "chromium" or "firefox"
	Browser string

	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport dimensions for the browser context
	ViewportWidth  int
	ViewportHeight int

	// UserAgent overrides the context user agent when non-empty
	UserAgent string
}

// Driver launches browser pages. Implementations own the underlying
// automation runtime; pages are owned by their callers once returned.
type Driver interface {
	Launch(ctx context.Context, opts Options) (Page, error)
}

// Page is a live browser page. All operations are time-bounded; a timeout is
// reported as an error like any other driver failure. Close releases every
// resource backing the page and is safe to call exactly once.
type Page interface {
	// Navigate loads the URL and waits for the network to go idle.
	Navigate(url string, timeout time.Duration) error

	// ClickFirst waits for the first selector in the list to become visible
	// and clicks it, returning the selector that matched. Each selector gets
	// the full timeout before the next is tried.
	ClickFirst(selectors []string, timeout time.Duration) (string, error)

	// WaitVisible waits for an element matching the selector to be visible.
	WaitVisible(selector string, timeout time.Duration) error

	// URL returns the page's current URL.
	URL() string

	Close() error
}

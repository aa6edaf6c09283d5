package session

import (
	"context"
	"sync"
	"time"

	"github.com/solverops/rangectl/internal/driver"
)

// fakePage records interactions instead of touching a browser.
type fakePage struct {
	mu            sync.Mutex
	clicks        []string
	visibleChecks []string
	closed        bool

	navigateErr error
	clickErr    error
	// clickErrAt fails the nth ClickFirst call (1-based) when clickErr is
	// set; zero fails every call.
	clickErrAt int
	clickCount int
}

func (p *fakePage) Navigate(url string, timeout time.Duration) error {
	return p.navigateErr
}

func (p *fakePage) ClickFirst(selectors []string, timeout time.Duration) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clickCount++
	if p.clickErr != nil && (p.clickErrAt == 0 || p.clickErrAt == p.clickCount) {
		return "", p.clickErr
	}
	p.clicks = append(p.clicks, selectors[0])
	return selectors[0], nil
}

func (p *fakePage) WaitVisible(selector string, timeout time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visibleChecks = append(p.visibleChecks, selector)
	return nil
}

func (p *fakePage) URL() string {
	return "https://example.com"
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePage) clickedSelectors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.clicks...)
}

func (p *fakePage) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// fakeDriver hands out fakePages. A gate channel, when set, blocks Launch
// until the test releases it; ignoreCancel keeps the launch running past
// context cancellation to exercise the late-arrival path.
type fakeDriver struct {
	mu           sync.Mutex
	pages        []*fakePage
	launchErr    error
	navigateErr  error
	clickErr     error
	gate         chan struct{}
	ignoreCancel bool
}

func (d *fakeDriver) Launch(ctx context.Context, opts driver.Options) (driver.Page, error) {
	if d.gate != nil {
		if d.ignoreCancel {
			<-d.gate
		} else {
			select {
			case <-d.gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if err := ctx.Err(); err != nil && !d.ignoreCancel {
		return nil, err
	}
	if d.launchErr != nil {
		return nil, d.launchErr
	}

	page := &fakePage{navigateErr: d.navigateErr, clickErr: d.clickErr}
	d.mu.Lock()
	d.pages = append(d.pages, page)
	d.mu.Unlock()
	return page, nil
}

func (d *fakeDriver) launchedPages() []*fakePage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*fakePage(nil), d.pages...)
}

func testConfig() Config {
	return Config{
		TargetURL:     "https://example.com/range-builder",
		Browser:       "firefox",
		LaunchTimeout: 2 * time.Second,
		MaxSessions:   50,
	}
}

// Package browser wraps chromedp behind the small positional-lookup surface
// the scrape pipeline needs. Element reads go through querySelectorAll
// evaluation so every call sees the current render snapshot instead of a
// possibly stale node reference.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0 Safari/537.36"

// Session owns one Chrome tab that is reused for the whole run.
type Session struct {
	ctx        context.Context
	cancel     context.CancelFunc
	navTimeout time.Duration
	logger     *zap.Logger
}

// NewSession launches Chrome and opens a blank tab. The session inherits
// cancellation from parent, so a user interrupt tears the browser down.
// Every navigation is bounded by navTimeout so a stalled page surfaces as an
// error instead of hanging the run. CHROME_PATH overrides the binary location
// when set.
func NewSession(parent context.Context, headless bool, navTimeout time.Duration, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)
	if path := os.Getenv("CHROME_PATH"); path != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(path))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		tabCancel()
		allocCancel()
	}

	if err := chromedp.Run(tabCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		return nil, fmt.Errorf("starting chrome: %w", err)
	}

	logger.Info("Browser session started", zap.Bool("headless", headless))
	return &Session{ctx: tabCtx, cancel: cancel, navTimeout: navTimeout, logger: logger}, nil
}

// Close shuts the tab and the browser process down.
func (s *Session) Close() {
	s.cancel()
}

// Navigate loads url and waits for the initial markup to be parsed, bounded
// by the session's navigation timeout. Script rendering is not awaited here;
// callers pause for that separately.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	navCtx, cancel := context.WithTimeout(s.ctx, s.navTimeout)
	defer cancel()
	return chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// Pause sleeps for d or until ctx is canceled.
func (s *Session) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WaitVisible blocks until selector matches a visible element, bounded by
// timeout.
func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	waitCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Count returns how many elements currently match selector.
func (s *Session) Count(ctx context.Context, selector string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int
	js := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(js, &n)); err != nil {
		return 0, err
	}
	return n, nil
}

// TextAt returns the trimmed text of child inside the index-th element
// matching selector. An empty child addresses the matched element itself.
// Missing elements yield "" rather than an error.
func (s *Session) TextAt(ctx context.Context, selector string, index int, child string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	js := fmt.Sprintf(`(() => {
		const el = document.querySelectorAll(%q)[%d];
		if (!el) return "";
		const target = %q ? el.querySelector(%q) : el;
		return target ? (target.innerText || target.textContent || "") : "";
	})()`, selector, index, child, child)
	var out string
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(js, &out)); err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// AttrAt returns the attribute value of child inside the index-th element
// matching selector, or "" when the element or attribute is missing.
func (s *Session) AttrAt(ctx context.Context, selector string, index int, child, attr string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	js := fmt.Sprintf(`(() => {
		const el = document.querySelectorAll(%q)[%d];
		if (!el) return "";
		const target = %q ? el.querySelector(%q) : el;
		return target ? (target.getAttribute(%q) || "") : "";
	})()`, selector, index, child, child, attr)
	var out string
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(js, &out)); err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ClickAt scrolls the index-th element matching selector into view and
// clicks it.
func (s *Session) ClickAt(ctx context.Context, selector string, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	js := fmt.Sprintf(`(() => {
		const el = document.querySelectorAll(%q)[%d];
		if (!el) return false;
		el.scrollIntoView({behavior:'instant', block:'center'});
		el.click();
		return true;
	})()`, selector, index)
	var clicked bool
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(js, &clicked)); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("no element at %s[%d]", selector, index)
	}
	return nil
}

// Click clicks the first element matching selector once it is visible. The
// wait and the click both run under the same timeout so neither can hang.
func (s *Session) Click(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clickCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(clickCtx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
}

// HTML returns the outer HTML of the first element matching selector, or ""
// when nothing matches.
func (s *Session) HTML(ctx context.Context, selector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	js := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		return el ? el.outerHTML : "";
	})()`, selector)
	var html string
	if err := chromedp.Run(s.ctx, chromedp.EvaluateAsDevTools(js, &html)); err != nil {
		return "", err
	}
	if html == "" {
		return "", errors.New("element not found: " + selector)
	}
	return html, nil
}

// PressEscape sends the Escape key to the page.
func (s *Session) PressEscape(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(s.ctx, chromedp.KeyEvent(kb.Escape))
}

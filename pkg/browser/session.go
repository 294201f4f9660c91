package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"utscraper/pkg/errors"
	"utscraper/pkg/logger"
)

// Options configures a rendering session
type Options struct {
	// Headless runs the browser without a window. Manual login needs a
	// visible browser, so the crawler runs headful by default.
	Headless bool
	// UserAgent is the client identity string presented to the site
	UserAgent string
	// OpTimeout bounds each individual browser operation
	OpTimeout time.Duration
}

// Session is a controllable browser instance. It executes the site's
// client-side script and exposes the rendered document for inspection.
// A Session is owned by a single crawl and is not safe for concurrent use.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	opTimeout   time.Duration
	logger      logger.Logger
}

// NewSession launches a browser and connects to it. Close must be called on
// every exit path; the caller usually defers it immediately.
func NewSession(parent context.Context, opts Options, log logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = 60 * time.Second
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("headless", opts.Headless),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser process, surfacing launch failures
	// here instead of on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, errors.Wrap(errors.ErrorTypeSession, err, "failed to start browser")
	}

	log.WithField("headless", opts.Headless).Debug("browser session started")

	return &Session{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		opTimeout:   opts.OpTimeout,
		logger:      log,
	}, nil
}

// Navigate loads the given URL and waits for the document body
func (s *Session) Navigate(url string) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opTimeout)
	defer cancel()

	s.logger.WithField("url", url).Debug("navigating")

	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeSession, err, "navigation to %s failed", url)
	}
	return nil
}

// HTML returns the outer HTML of the currently rendered document
func (s *Session) HTML() (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", errors.Wrap(errors.ErrorTypeSession, err, "failed to read rendered document")
	}
	return html, nil
}

// ScrollToBottom scrolls the view to the bottom of the page to trigger lazy
// content.
func (s *Session) ScrollToBottom() error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opTimeout)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight);`, nil),
	)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeSession, err, "scroll failed")
	}
	return nil
}

// ClickVisible locates the first element matching selector and, if it is
// visible and enabled, activates it through script. Clicking in script
// rather than by pointer coordinates avoids being blocked by overlapping
// elements. Returns false when no actionable element matched.
func (s *Session) ClickVisible(selector string) (bool, error) {
	ctx, cancel := context.WithTimeout(s.ctx, s.opTimeout)
	defer cancel()

	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) {
			return false;
		}
		const style = window.getComputedStyle(el);
		if (el.offsetParent === null || style.visibility === 'hidden' || style.display === 'none') {
			return false;
		}
		if (el.disabled) {
			return false;
		}
		el.click();
		return true;
	})()`, selector)

	var clicked bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		return false, errors.Wrap(errors.ErrorTypeControl, err, "click evaluation for %q failed", selector)
	}
	return clicked, nil
}

// Close tears the browser down and waits for the process to exit, so
// teardown is complete before the caller returns. It is safe to call
// after a cancelled context; the allocator cancel kills the browser
// process either way.
func (s *Session) Close() error {
	s.logger.Debug("closing browser session")
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	s.allocCancel()
	if err != nil {
		return errors.Wrap(errors.ErrorTypeSession, err, "browser shutdown failed")
	}
	return nil
}

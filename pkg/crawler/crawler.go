package crawler

import (
	"context"
	"time"

	"utscraper/pkg/errors"
	"utscraper/pkg/logger"
	"utscraper/pkg/untappd"
)

// Session is the rendering-session surface the crawler drives. It is
// satisfied by browser.Session; tests substitute a scripted fake.
type Session interface {
	// Navigate loads a URL and waits for the document body
	Navigate(url string) error
	// HTML returns the outer HTML of the currently rendered document
	HTML() (string, error)
	// ScrollToBottom scrolls the view to trigger lazy content
	ScrollToBottom() error
	// ClickVisible script-activates the first visible, enabled element
	// matching selector, reporting whether anything was clicked
	ClickVisible(selector string) (bool, error)
}

// AuthWaiter blocks until the operator signals that the manual login
// (including any interactive challenge) has completed. It is the only
// authentication synchronization mechanism; no credentials are ever
// submitted programmatically.
type AuthWaiter func(ctx context.Context) error

// Options configures a Crawler
type Options struct {
	// Strategies is the ordered "show more" locator fallback list.
	// DefaultStrategies() is used when empty.
	Strategies []Strategy
	// NavigationSettle is the pause after loading the gallery page
	NavigationSettle time.Duration
	// ScrollSettle is the pause after scrolling to the bottom
	ScrollSettle time.Duration
	// LoadMoreSettle is the pause after activating the control
	LoadMoreSettle time.Duration
	// MaxAttempts is the hard ceiling on load-more activations
	MaxAttempts int
	// Events receives progress callbacks
	Events Events
	// Logger defaults to the global logger
	Logger logger.Logger
}

// Crawler paginates a user's photo gallery through a rendering session,
// accumulating deduplicated photo records in first-seen order.
type Crawler struct {
	session    Session
	strategies []Strategy
	opts       Options
	logger     logger.Logger
}

// New creates a Crawler over an already started rendering session. The
// caller keeps ownership of the session and is responsible for closing it.
func New(session Session, opts Options) *Crawler {
	if opts.Logger == nil {
		opts.Logger = logger.GetLogger()
	}
	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 100
	}

	return &Crawler{
		session:    session,
		strategies: strategies,
		opts:       opts,
		logger:     opts.Logger,
	}
}

// Crawl drives the manual login, navigates to username's gallery, and runs
// the extraction loop until the cap is met, the gallery is exhausted, or
// the attempt ceiling is hit. maxPhotos of 0 means no cap. The returned
// records preserve first-discovery order; on error the accumulation so far
// is returned alongside it.
func (c *Crawler) Crawl(ctx context.Context, username string, maxPhotos int, awaitAuth AuthWaiter) ([]untappd.PhotoRecord, error) {
	c.opts.Events.phaseChanged(PhaseAwaitAuth)
	if err := c.session.Navigate(untappd.LoginURL()); err != nil {
		return nil, err
	}
	if err := awaitAuth(ctx); err != nil {
		return nil, err
	}

	c.opts.Events.phaseChanged(PhaseNavigate)
	galleryURL := untappd.UserPhotosURL(username)
	c.logger.WithField("url", galleryURL).Info("loading gallery")
	if err := c.session.Navigate(galleryURL); err != nil {
		return nil, err
	}
	if err := sleep(ctx, c.opts.NavigationSettle); err != nil {
		return nil, err
	}

	c.opts.Events.phaseChanged(PhaseExtract)
	records, err := c.paginate(ctx, maxPhotos)
	c.opts.Events.phaseChanged(PhaseDone)
	return records, err
}

// paginate runs the extract/advance loop over the rendered document
func (c *Crawler) paginate(ctx context.Context, maxPhotos int) ([]untappd.PhotoRecord, error) {
	var records []untappd.PhotoRecord
	seen := make(map[string]bool)
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return records, errors.Wrap(errors.ErrorTypeInterrupted, err, "crawl cancelled")
		}

		// Re-scan the whole accumulated document every pass. The site may
		// re-render or reorder existing items when appending new ones, so
		// never-double-counting rests entirely on the id seen-set.
		html, err := c.session.HTML()
		if err != nil {
			return records, err
		}

		pageRecords, err := untappd.ParseGallery(html)
		if err != nil {
			return records, err
		}

		newCount := 0
		for _, record := range pageRecords {
			if seen[record.ID] {
				continue
			}
			seen[record.ID] = true
			records = append(records, record)
			newCount++
		}

		c.logger.WithFields(map[string]interface{}{
			"total":   len(records),
			"new":     newCount,
			"attempt": attempts,
		}).Debug("extraction pass completed")
		c.opts.Events.passCompleted(PassStats{Attempt: attempts, New: newCount, Total: len(records)})

		if maxPhotos > 0 && len(records) >= maxPhotos {
			records = records[:maxPhotos]
			c.opts.Events.finished(ReasonCapReached, len(records))
			return records, nil
		}

		if attempts >= c.opts.MaxAttempts {
			c.logger.WithField("attempts", attempts).Warn("load-more attempt ceiling reached")
			c.opts.Events.finished(ReasonAttemptLimit, len(records))
			return records, nil
		}

		advanced, err := c.advance(ctx)
		if err != nil {
			return records, err
		}
		if !advanced {
			c.opts.Events.finished(ReasonExhausted, len(records))
			return records, nil
		}
		attempts++
	}
}

// advance scrolls to the bottom and tries each locator strategy in order.
// It reports false when no strategy found an actionable control, which is
// the gallery's exhaustion signal, not an error.
func (c *Crawler) advance(ctx context.Context) (bool, error) {
	if err := c.session.ScrollToBottom(); err != nil {
		// A failed scroll doesn't prevent the control from being present
		c.logger.WithError(err).Warn("scroll failed, trying control anyway")
	}
	if err := sleep(ctx, c.opts.ScrollSettle); err != nil {
		return false, errors.Wrap(errors.ErrorTypeInterrupted, err, "crawl cancelled")
	}

	for _, strategy := range c.strategies {
		clicked, err := c.session.ClickVisible(strategy.Selector())
		if err != nil {
			c.logger.WithError(err).WithField("strategy", strategy.Name()).Debug("locator strategy failed")
			continue
		}
		if !clicked {
			continue
		}

		c.logger.WithField("strategy", strategy.Name()).Debug("show-more control activated")
		c.opts.Events.controlActivated(strategy.Name())

		if err := sleep(ctx, c.opts.LoadMoreSettle); err != nil {
			return false, errors.Wrap(errors.ErrorTypeInterrupted, err, "crawl cancelled")
		}
		return true, nil
	}

	return false, nil
}

// sleep pauses for d unless the context is cancelled first
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

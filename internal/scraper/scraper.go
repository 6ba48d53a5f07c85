// Package scraper collects news cards from the portal home page with a
// headless browser and enriches each card from its article page.
package scraper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/newsboard/internal/news"
)

const maxErrorLen = 180

// Options controls a single scrape.
type Options struct {
	URL         string
	ColumnID    string
	Timeout     time.Duration
	ArticleWait time.Duration
	Headless    bool
	Limit       int
}

// Request describes one page load inside a browser session.
type Request struct {
	URL     string
	Timeout time.Duration

	// WaitFor is a CSS selector to wait for after the load event.
	WaitFor     string
	WaitTimeout time.Duration
	// WaitOptional makes a WaitFor miss non-fatal.
	WaitOptional bool
}

// Session is a running browser that can load pages.
type Session interface {
	Open(ctx context.Context, req Request) (string, error)
	Close() error
}

// Launcher starts browser sessions.
type Launcher interface {
	Launch(ctx context.Context, headless bool) (Session, error)
}

// Scraper turns the portal column into news items.
type Scraper struct {
	launcher    Launcher
	concurrency int
	logger      *zap.Logger
}

// New returns a Scraper that enriches at most concurrency articles at once.
func New(l Launcher, concurrency int, logger *zap.Logger) *Scraper {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{launcher: l, concurrency: concurrency, logger: logger}
}

// Scrape launches a browser, reads the column cards and enriches each one
// with its subtitle and publication date. Enrichment failures are reported
// per item in Item.Error; only listing failures abort the scrape.
func (s *Scraper) Scrape(ctx context.Context, opts Options) ([]news.Item, error) {
	session, err := s.launcher.Launch(ctx, opts.Headless)
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn("closing browser", zap.Error(err))
		}
	}()

	home, err := session.Open(ctx, Request{
		URL:         opts.URL,
		Timeout:     opts.Timeout,
		WaitFor:     WrapperSelector(opts.ColumnID),
		WaitTimeout: opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", opts.URL, err)
	}

	items, err := ExtractCards(home, opts.URL, opts.ColumnID, opts.Limit)
	if err != nil {
		return nil, err
	}
	s.logger.Info("column cards extracted",
		zap.String("column", opts.ColumnID),
		zap.Int("cards", len(items)))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range items {
		i := i
		g.Go(func() error {
			s.enrich(ctx, session, &items[i], opts)
			return nil
		})
	}
	// enrichment failures are recorded per item
	_ = g.Wait()

	return items, nil
}

func (s *Scraper) enrich(ctx context.Context, session Session, item *news.Item, opts Options) {
	page, err := session.Open(ctx, Request{
		URL:          item.Href,
		Timeout:      opts.Timeout,
		WaitFor:      subtitleSelector,
		WaitTimeout:  opts.ArticleWait,
		WaitOptional: true,
	})
	if err == nil {
		item.Subtitle, item.CreatedAt, err = ExtractArticle(page)
	}
	if err != nil {
		item.Subtitle = ""
		item.CreatedAt = ""
		item.Error = truncate(err.Error(), maxErrorLen)
		s.logger.Debug("article enrichment failed", zap.String("href", item.Href), zap.Error(err))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

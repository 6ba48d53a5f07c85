package board

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/newsboard/internal/history"
	"github.com/ziadkadry99/newsboard/internal/news"
)

// Fetcher retrieves items from the feed endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, q news.Query) ([]news.Item, error)
	URL(q news.Query) string
}

// Recorder stores the outcome of each refresh.
type Recorder interface {
	Log(ctx context.Context, run history.Run) error
}

// Controller runs fetch-then-render cycles against a Board.
type Controller struct {
	fetcher  Fetcher
	board    *Board
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder records every refresh outcome in r.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithClock overrides the time source used for history records.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController returns a controller rendering into b.
func NewController(f Fetcher, b *Board, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		fetcher: f,
		board:   b,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Board returns the board the controller renders into.
func (c *Controller) Board() *Board { return c.board }

// Refresh clears the board, fetches the feed once and renders the result.
// Failures end up in the board's status; nothing is retried. Concurrent
// refreshes are not coordinated and the last one to finish wins.
func (c *Controller) Refresh(ctx context.Context, q news.Query) news.Status {
	run := history.Run{
		StartedAt: c.now(),
		Endpoint:  c.fetcher.URL(q),
	}

	c.board.Clear()
	c.board.SetStatus(news.StatusLoading, loadingText)

	items, err := c.fetcher.Fetch(ctx, q)
	switch {
	case err != nil:
		c.board.SetStatus(news.StatusError, errorPrefix+err.Error())
		run.Status = news.StatusError
		run.Error = err.Error()
		var reqErr *news.RequestError
		if errors.As(err, &reqErr) {
			run.HTTPStatus = reqErr.StatusCode
		}
		c.logger.Warn("refresh failed", zap.String("endpoint", run.Endpoint), zap.Error(err))

	case len(items) == 0:
		c.board.SetStatus(news.StatusEmpty, emptyText)
		run.Status = news.StatusEmpty

	default:
		c.board.SetStatus(news.StatusIdle, "")
		for i, item := range items {
			card := RenderCard(item)
			if !card.HasSource {
				c.logger.Debug("card has no resolvable host",
					zap.Int("index", i),
					zap.String("href", item.Href))
			}
			c.board.Append(card)
		}
		run.Status = news.StatusIdle
		run.ItemCount = len(items)
	}

	run.FinishedAt = c.now()
	c.record(ctx, run)

	c.logger.Debug("refresh finished",
		zap.String("status", string(run.Status)),
		zap.Int("items", run.ItemCount),
		zap.Duration("took", run.Duration()))
	return run.Status
}

func (c *Controller) record(ctx context.Context, run history.Run) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Log(context.WithoutCancel(ctx), run); err != nil {
		c.logger.Warn("recording refresh", zap.Error(err))
	}
}

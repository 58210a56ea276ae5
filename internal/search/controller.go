// Package search coalesces rapid criteria edits into a single query
// dispatch and guards against out-of-order results, so list surfaces only
// ever show the response matching the newest criteria.
package search

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last criteria edit before
// a query is dispatched.
const DefaultDebounce = 300 * time.Millisecond

// Dispatch executes one query for the given criteria and page.
type Dispatch[C, T any] func(ctx context.Context, criteria C, page int) (T, error)

// Controller debounces criteria edits and serializes results.
//
// Every dispatch carries a sequence number taken at issue time; a result
// whose sequence is older than the newest issued one is dropped, so a slow
// early query can never overwrite a newer result. Criteria edits reset the
// page to 1 and wait out the debounce interval; explicit page changes
// dispatch immediately.
type Controller[C, T any] struct {
	mu       sync.Mutex
	interval time.Duration
	dispatch Dispatch[C, T]
	onResult func(value T, err error)
	logger   *zap.Logger

	timer    *time.Timer
	seq      uint64
	criteria C
	page     int
	loading  bool
	closed   bool
}

// NewController wires a controller to its query dispatcher. onResult is
// invoked (from the dispatch goroutine) for every non-stale terminal result,
// success or error. interval <= 0 falls back to DefaultDebounce.
func NewController[C, T any](interval time.Duration, dispatch Dispatch[C, T], onResult func(value T, err error), logger *zap.Logger) *Controller[C, T] {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller[C, T]{
		interval: interval,
		dispatch: dispatch,
		onResult: onResult,
		logger:   logger,
		page:     1,
	}
}

// SetCriteria records a criteria edit, resets the page to 1 and schedules a
// dispatch after the quiet period. Edits inside the window coalesce; only
// the final state is queried.
func (c *Controller[C, T]) SetCriteria(criteria C) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.criteria = criteria
	c.page = 1
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.interval, c.fire)
}

// SetPage moves to a page of the current criteria and dispatches
// immediately. Any pending debounced dispatch is superseded.
func (c *Controller[C, T]) SetPage(page int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if page < 1 {
		page = 1
	}
	c.page = page
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.fire()
}

// Refresh re-runs the current criteria and page immediately.
func (c *Controller[C, T]) Refresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.fire()
}

// Loading reports whether a dispatch is in flight whose result is still
// awaited (stale flights do not count).
func (c *Controller[C, T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Close stops any pending dispatch. In-flight results are discarded.
func (c *Controller[C, T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	// bump so in-flight results become stale
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.loading = false
}

func (c *Controller[C, T]) fire() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	criteria := c.criteria
	page := c.page
	c.loading = true
	c.mu.Unlock()

	go func() {
		value, err := c.dispatch(context.Background(), criteria, page)

		c.mu.Lock()
		if seq != c.seq || c.closed {
			// a newer dispatch was issued while this one ran
			c.mu.Unlock()
			c.logger.Debug("discarding stale search result", zap.Uint64("seq", seq))
			return
		}
		c.loading = false
		c.mu.Unlock()

		if c.onResult != nil {
			c.onResult(value, err)
		}
	}()
}

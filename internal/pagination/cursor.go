// Package pagination tracks the page cursor for one flat list view.
package pagination

import "sync"

// Cursor is the pagination state machine: a zero-based page index, a
// has-more flag that latches false the first time a short page arrives,
// and a loading-more guard.
type Cursor struct {
	mu          sync.Mutex
	page        int
	hasMore     bool
	loadingMore bool
	evaluated   bool // at least one filter evaluation pass has completed
}

// NewCursor starts at (page 0, hasMore true).
func NewCursor() *Cursor {
	return &Cursor{hasMore: true}
}

// Snapshot returns the current (page, hasMore, loadingMore).
func (c *Cursor) Snapshot() (page int, hasMore, loadingMore bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page, c.hasMore, c.loadingMore
}

// Reset returns the cursor to (0, true). Called whenever the
// server-evaluated filter portion changes, which invalidates prior pages.
func (c *Cursor) Reset() {
	c.mu.Lock()
	c.page = 0
	c.hasMore = true
	c.loadingMore = false
	c.evaluated = false
	c.mu.Unlock()
}

// TryLoadMore attempts to claim a load-more slot. It succeeds only when no
// load is in flight, more pages exist, and at least one evaluation pass has
// completed for the current data; the returned page is the one to fetch.
func (c *Cursor) TryLoadMore() (page int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadingMore || !c.hasMore || !c.evaluated {
		return 0, false
	}
	c.loadingMore = true
	return c.page + 1, true
}

// Observe records the outcome of a fetch for page: the cursor advances and
// hasMore latches false on the first short page.
func (c *Cursor) Observe(page, batchSize, pageSize int) {
	c.mu.Lock()
	c.page = page
	if batchSize < pageSize {
		c.hasMore = false
	}
	c.loadingMore = false
	c.mu.Unlock()
}

// Fail releases the load-more guard without advancing the cursor.
func (c *Cursor) Fail() {
	c.mu.Lock()
	c.loadingMore = false
	c.mu.Unlock()
}

// MarkEvaluated notes that the filter engine finished an evaluation pass
// for the current data, unlocking backfill-driven load-more.
func (c *Cursor) MarkEvaluated() {
	c.mu.Lock()
	c.evaluated = true
	c.mu.Unlock()
}

// Package mealsync is the client-side synchronization layer for a personal
// meal-record collection: records appear instantly from the local cache
// while staying eventually consistent with the remote system of record.
package mealsync

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/platefeed/platefeed-sync/internal/cache"
	"github.com/platefeed/platefeed-sync/internal/kvstore"
	"github.com/platefeed/platefeed-sync/internal/prefs"
	"github.com/platefeed/platefeed-sync/internal/remote"
	"github.com/platefeed/platefeed-sync/internal/shardqueue"
	"github.com/platefeed/platefeed-sync/internal/syncer"
)

// defaultView keys filter persistence for the single list view this SDK
// serves today.
const defaultView = "records"

// Client is the public surface of the sync layer. Construct with New; the
// zero value is not usable.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	exec  *shardqueue.Executor // nil when WithoutExecutor
	cache *cache.Cache
	store kvstore.Store
	prefs *prefs.Bridge
	sync  *syncer.Syncer

	cfg           syncer.Config
	cacheDisabled bool
	noExecutor    bool

	closedOnce uint32
}

// New constructs a Client against baseURL, authenticating every request
// with apiKey. Additional behavior is configured through options.
func New(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}
	if apiKey == "" {
		panic("apiKey cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   cache.New(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	if c.cfg.PageSize == 0 {
		if loaded, err := syncer.LoadConfig(); err == nil {
			c.cfg = loaded
		}
	}
	if c.exec == nil && !c.noExecutor {
		c.exec = shardqueue.NewExecutor(shardqueue.Config{Shards: 4, QueueSize: 256})
	}
	if c.store == nil {
		c.store = kvstore.NewMemoryStore()
	}

	c.wrapTransportWithAPIKey()

	source := remote.NewHTTPSource(c.http, c.baseURL)
	c.sync = syncer.New(source, c.cache, c.exec, c.cfg)
	if c.cacheDisabled {
		c.sync.DisableCache()
	}
	c.prefs = prefs.NewBridge(c.store, c.exec, 0, 0)

	return c
}

// wrapTransportWithAPIKey installs the bearer-key transport so every
// request, including debug-wrapped ones, carries the Authorization header.
func (c *Client) wrapTransportWithAPIKey() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &apiKeyTransport{base: base, apiKey: c.apiKey}
}

type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(cloned)
}

// Close stops the background executor and the preference store. Safe to
// call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.prefs != nil {
		c.prefs.Flush()
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

// AwaitIdle blocks until every background job previously enqueued for key
// (cache population, preference writes) has run.
func (c *Client) AwaitIdle(ctx context.Context, key CollectionKey) error {
	if c.exec == nil {
		return nil
	}
	return c.exec.Barrier(ctx, key.String())
}

// --------------------------------------------------------------------
// Collection operations - delegated to internal/syncer
// --------------------------------------------------------------------

// LoadCollection performs the initial load for key: the local cache is
// preferred when no categorical filter is active, otherwise the remote
// source is queried directly.
func (c *Client) LoadCollection(ctx context.Context, key CollectionKey) (*ViewState, error) {
	return c.sync.Load(ctx, key, syncer.ModeInitial)
}

// Refresh resets pagination and error state for key and refetches from the
// remote source.
func (c *Client) Refresh(ctx context.Context, key CollectionKey) (*ViewState, error) {
	return c.sync.Load(ctx, key, syncer.ModeRefresh)
}

// LoadMore fetches the next page for key. While a load-more is already in
// flight, or when no more pages exist, it is a no-op returning the current
// state.
func (c *Client) LoadMore(ctx context.Context, key CollectionKey) (*ViewState, error) {
	return c.sync.Load(ctx, key, syncer.ModeLoadMore)
}

// LoadWeek fetches the seven date buckets starting at startDate
// concurrently. Per-date failures do not suppress successful dates.
func (c *Client) LoadWeek(ctx context.Context, ownerID, startDate string) (*WeekResult, error) {
	return c.sync.LoadWeek(ctx, ownerID, startDate)
}

// --------------------------------------------------------------------
// Filter operations
// --------------------------------------------------------------------

// ApplyFilters validates and installs spec. A change to the
// server-evaluated portion (categorical filters) resets pagination and
// refetches; purely client-side changes re-evaluate the in-memory set.
// The applied spec is persisted with a debounced write.
func (c *Client) ApplyFilters(ctx context.Context, key CollectionKey, spec FilterSpec) (*ViewState, error) {
	vs, err := c.sync.ApplyFilters(ctx, key, spec)
	if err == nil {
		c.prefs.Save(defaultView, key.OwnerID, spec)
	}
	return vs, err
}

// ClearFilters removes every active filter and its persisted state.
func (c *Client) ClearFilters(ctx context.Context, key CollectionKey) (*ViewState, error) {
	vs, err := c.sync.ClearFilters(ctx, key)
	if err == nil {
		c.prefs.Clear(ctx, defaultView, key.OwnerID)
	}
	return vs, err
}

// RestoreFilters loads the persisted filter spec for ownerID, waiting at
// most the bounded restore timeout, and installs it without refetching.
// Malformed or missing persisted state yields the zero spec.
func (c *Client) RestoreFilters(ctx context.Context, ownerID string) FilterSpec {
	spec := c.prefs.Restore(ctx, defaultView, ownerID)
	c.sync.SetSpec(spec)
	return spec
}

// --------------------------------------------------------------------
// Mutations
// --------------------------------------------------------------------

// ToggleFavorite optimistically flips the favorite flag of recordID within
// key's collection and rolls back if the remote update fails. Derived
// records are not toggleable; the call is then a no-op.
func (c *Client) ToggleFavorite(ctx context.Context, key CollectionKey, recordID string) (*ViewState, error) {
	return c.sync.ToggleFavorite(ctx, key, recordID)
}

// DeleteRecordsForDate removes every record in one date bucket and
// invalidates the affected cache entries.
func (c *Client) DeleteRecordsForDate(ctx context.Context, ownerID, date string) (*ViewState, error) {
	return c.sync.DeleteRecordsForDate(ctx, ownerID, date)
}

// AnalyzeImage submits an encoded image for nutrition analysis. The
// analysis service persists a derived record server-side, so on success
// the target date is refetched rather than patched locally.
func (c *Client) AnalyzeImage(ctx context.Context, ownerID, date, encodedImage string) (*AnalysisResult, *ViewState, error) {
	return c.sync.AnalyzeImage(ctx, ownerID, date, encodedImage)
}

// DropCollection discards all local state for key. Called when the owning
// view unmounts or the user changes.
func (c *Client) DropCollection(key CollectionKey) {
	c.sync.Drop(key)
}

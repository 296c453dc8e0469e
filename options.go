package mealsync

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/platefeed/platefeed-sync/internal/kvstore"
)

// Option configures a Client during construction in New.
//
// Options are applied before the authorization transport wrapper is
// installed, so transport-related options (like debug logging) end up
// underneath the API-key wrapper. Options must be deterministic and
// side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net bounding the total time of a single HTTP request. The
// value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response
// is logged when enabled is true. Not for production use: dumps include
// headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithStore replaces the in-memory preference store with a durable one,
// typically kvstore.OpenSQLite. The Client takes ownership and closes it.
func WithStore(store kvstore.Store) Option {
	return func(c *Client) error {
		if store == nil {
			return fmt.Errorf("store cannot be nil")
		}
		c.store = store
		return nil
	}
}

// WithSQLiteStore opens a durable preference store at path.
func WithSQLiteStore(path string) Option {
	return func(c *Client) error {
		store, err := kvstore.OpenSQLite(path)
		if err != nil {
			return fmt.Errorf("open preference store: %w", err)
		}
		c.store = store
		return nil
	}
}

// WithConfig overrides the orchestrator tunables. Zero fields keep their
// defaults.
func WithConfig(cfg Config) Option {
	return func(c *Client) error {
		c.cfg = cfg
		return nil
	}
}

// WithCacheDisabled turns the local cache off entirely; every load goes to
// the remote source.
func WithCacheDisabled() Option {
	return func(c *Client) error {
		c.cacheDisabled = true
		return nil
	}
}

// WithoutExecutor disables the background executor. Cache population and
// preference writes then run inline. Intended for tests.
func WithoutExecutor() Option {
	return func(c *Client) error {
		c.noExecutor = true
		return nil
	}
}

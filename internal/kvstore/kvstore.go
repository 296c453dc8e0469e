// Package kvstore provides the durable key-value capability used for
// filter persistence. Keys are opaque strings; values are small strings.
// There are no transactional guarantees across keys.
package kvstore

import "context"

// Store is the asynchronous key-value capability.
type Store interface {
	// Get returns the value for key, or ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

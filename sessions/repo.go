package sessions

import "context"

// Repo is durable key/value storage scoped per browser.
// Get returns errors.ErrSessionNotFound when the key is absent.
type Repo interface {
	Get(ctx context.Context, browserID, key string) (string, error)
	Set(ctx context.Context, browserID, key, value string) error
	Delete(ctx context.Context, browserID string, keys ...string) error
	Close() error
}

// Package kvstore is the host key-value store the logbook persists into.
// Every value is an opaque blob replaced as a whole on write.
package kvstore

import "context"

// Store persists opaque blobs under string keys.
type Store interface {
	// Get returns the blob stored under key. found is false when the key
	// has never been written or was deleted.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set replaces the blob under key in a single write.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Package storage provides the data persistence layer for the ledger.
package storage

import "context"

// DefaultKey is the well-known key the ledger blob is stored under.
const DefaultKey = "financeData"

// BlobStore is an opaque, string-keyed store of serialized blobs.
// Get returns common.ErrNotFound when the key is absent.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

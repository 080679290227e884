package persist

import (
	"context"
	"errors"
)

// ErrNoBlob is returned by Get when the key has never been written.
// A missing blob is not corruption; it loads as an empty collection.
var ErrNoBlob = errors.New("blob not found")

// BlobStore is the outbound port to the key-value blob storage that
// holds the persisted state.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

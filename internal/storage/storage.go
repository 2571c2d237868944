// Package storage provides the key-value capability the identity and
// content stores persist through. Values are opaque byte blobs; each
// store owns its keys and rewrites the whole value on every mutation.
package storage

import "context"

// Store is a flat keyed blob space. Get reports absence through the
// boolean rather than an error so callers can distinguish "no value yet"
// (seed path) from a failing backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

package interfaces

import "context"

// ObjectStore is the content-addressable store for encrypted payloads.
// Get wraps types.ErrNotFound when the key is absent. Delete is best-effort:
// callers log its failure but never escalate it.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

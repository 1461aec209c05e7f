package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
)

// ObjectStore is an in-memory object store for development mode and tests
type ObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewObjectStore creates an empty in-memory object store
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		objects: make(map[string][]byte),
	}
}

func (x *ObjectStore) Put(ctx context.Context, key string, data []byte) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.objects[key] = append([]byte(nil), data...)
	return nil
}

func (x *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	data, exists := x.objects[key]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "object not found", goerr.V(types.ObjectKeyKey, key))
	}
	return append([]byte(nil), data...), nil
}

// Delete removes an object. Deleting an absent key is not an error, matching
// object store semantics.
func (x *ObjectStore) Delete(ctx context.Context, key string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	delete(x.objects, key)
	return nil
}

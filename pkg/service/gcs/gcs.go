package gcs

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/custody-lab/themis/pkg/domain/types"
	"github.com/custody-lab/themis/pkg/utils/safe"
)

// Client stores encrypted payloads in a Google Cloud Storage bucket,
// authenticating with application default credentials.
type Client struct {
	client *storage.Client
	bucket string
}

// New creates a GCS object store client
func New(ctx context.Context, bucket string) (*Client, error) {
	if bucket == "" {
		return nil, goerr.Wrap(types.ErrValidation, "gcs bucket is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gcs client")
	}
	return &Client{client: client, bucket: bucket}, nil
}

// Close releases the underlying client
func (x *Client) Close() error {
	return x.client.Close()
}

func (x *Client) Put(ctx context.Context, key string, data []byte) error {
	w := x.client.Bucket(x.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/octet-stream"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(types.ErrUpstreamUnavailable, "failed to write object",
			goerr.V(types.ObjectKeyKey, key), goerr.V("cause", err.Error()))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(types.ErrUpstreamUnavailable, "failed to finalize object",
			goerr.V(types.ObjectKeyKey, key), goerr.V("cause", err.Error()))
	}
	return nil
}

func (x *Client) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := x.client.Bucket(x.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(types.ErrNotFound, "object not found", goerr.V(types.ObjectKeyKey, key))
		}
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "failed to open object",
			goerr.V(types.ObjectKeyKey, key), goerr.V("cause", err.Error()))
	}
	defer safe.Close(ctx, r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamUnavailable, "failed to read object",
			goerr.V(types.ObjectKeyKey, key), goerr.V("cause", err.Error()))
	}
	return data, nil
}

func (x *Client) Delete(ctx context.Context, key string) error {
	if err := x.client.Bucket(x.bucket).Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return goerr.Wrap(types.ErrUpstreamUnavailable, "failed to delete object",
			goerr.V(types.ObjectKeyKey, key), goerr.V("cause", err.Error()))
	}
	return nil
}
